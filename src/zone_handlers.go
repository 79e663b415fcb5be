package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"cfms/src/common"
	"cfms/src/db"
	"cfms/src/middlewares"
	"cfms/src/models"
	"cfms/src/types"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

func zoneHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/zones", func(ctx *gin.Context) {
			var zones []models.ParkingZone
			db := db.GetDb()
			if err := db.
				Order("name asc").
				Find(&zones).
				Error; err != nil {
				log.Printf("Error retrieving Zones: %s\n", err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": zones, "count": len(zones)})
		}).
		GET("/zones/:id/spots", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var spots []models.ParkingSpot
			db := db.GetDb()
			if err := db.
				Where(&models.ParkingSpot{ZoneID: params.ID}).
				Order("label asc").
				Find(&spots).
				Error; err != nil {
				log.Printf("Error retrieving Spots for Zone [%d]: %s\n", params.ID, err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": spots, "count": len(spots)})
		}).
		POST("/zones", middlewares.RequireRoles(types.ROLE_ORGANIZER), func(ctx *gin.Context) {
			var body types.CreateZoneRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			zoneType := body.Type
			if zoneType == "" {
				zoneType = "standard"
			}
			zone := models.ParkingZone{
				Name:       body.Name,
				Slug:       slug.Make(body.Name),
				Location:   body.Location,
				Capacity:   body.Capacity,
				Type:       zoneType,
				PriceCents: body.PriceCents,
				Facilities: body.Facilities,
			}
			var spotsCreated int
			db := db.GetDb()
			err := db.Transaction(func(tx *gorm.DB) error {
				var dupes int64
				if err := tx.
					Model(&models.ParkingZone{}).
					Where(&models.ParkingZone{Name: body.Name}).
					Count(&dupes).
					Error; err != nil {
					return err
				}
				if dupes > 0 {
					return errors.New("a zone with this name already exists")
				}
				if err := tx.Create(&zone).Error; err != nil {
					return err
				}
				// one spot per unit of capacity, labeled within the zone
				spots := make([]models.ParkingSpot, 0, zone.Capacity)
				for i := uint(1); i <= zone.Capacity; i++ {
					spots = append(spots, models.ParkingSpot{
						ZoneID: zone.ID,
						Label:  fmt.Sprintf("%s-%03d", zone.Slug, i),
						Type:   zoneType,
						Status: types.SPOT_AVAILABLE,
					})
				}
				if err := tx.CreateInBatches(&spots, 100).Error; err != nil {
					return err
				}
				spotsCreated = len(spots)
				return nil
			})
			if err != nil {
				log.Printf("Error creating Zone: %s\n", err.Error())
				ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
				return
			}
			common.InvalidateOccupancyCache()
			ctx.JSON(http.StatusCreated, gin.H{"data": zone, "spotsCreated": spotsCreated})
		})
	return g
}
