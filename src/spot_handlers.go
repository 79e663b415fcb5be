package main

import (
	"errors"
	"log"
	"net/http"

	"cfms/src/common"
	"cfms/src/db"
	"cfms/src/middlewares"
	"cfms/src/models"
	"cfms/src/types"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func spotHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/spots/metrics", func(ctx *gin.Context) {
			report, err := common.GetOccupancyReport()
			if err != nil {
				log.Printf("Error aggregating occupancy: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not aggregate occupancy"})
				return
			}
			ctx.JSON(http.StatusOK, report)
		}).
		PATCH("/spots/:id/status", middlewares.RequireRoles(types.ROLE_STAFF, types.ROLE_COORDINATOR, types.ROLE_ORGANIZER), func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.UpdateSpotStatusRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var spot models.ParkingSpot
			db := db.GetDb()
			err := db.Transaction(func(tx *gorm.DB) error {
				if err := tx.First(&spot, params.ID).Error; err != nil {
					return err
				}
				// occupied spots are owned by their reservation; cancel that instead
				if spot.Status == types.SPOT_OCCUPIED {
					return errors.New("spot is occupied by an active reservation")
				}
				if err := tx.
					Model(&models.ParkingSpot{}).
					Where("id = ?", params.ID).
					Update("status", body.Status).
					Error; err != nil {
					return err
				}
				spot.Status = types.SpotStatus(body.Status)
				return nil
			})
			if err != nil {
				log.Printf("Error updating Spot [%d]: %s\n", params.ID, err.Error())
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.Status(http.StatusNotFound)
					return
				}
				ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
				return
			}
			common.InvalidateOccupancyCache()
			ctx.JSON(http.StatusOK, gin.H{"spot": spot})
		})
	return g
}
