package main

import (
	"errors"
	"log"
	"net/http"

	"cfms/src/db"
	"cfms/src/middlewares"
	"cfms/src/models"
	"cfms/src/types"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func counterHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/counters", func(ctx *gin.Context) {
			var counters []models.Counter
			db := db.GetDb()
			if err := db.
				Order("name asc").
				Find(&counters).
				Error; err != nil {
				log.Printf("Error retrieving Counters: %s\n", err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": counters, "count": len(counters)})
		}).
		GET("/counters/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var counter models.Counter
			db := db.GetDb()
			if err := db.First(&counter, params.ID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.Status(http.StatusNotFound)
					return
				}
				ctx.Status(http.StatusBadRequest)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"counter": counter})
		}).
		POST("/counters", middlewares.RequireRoles(types.ROLE_ORGANIZER), func(ctx *gin.Context) {
			var body types.CreateCounterRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			status := types.CounterStatus(body.Status)
			if body.Status == "" {
				status = types.COUNTER_ENTRY
			}
			counter := models.Counter{
				Name:     body.Name,
				Entrance: body.Entrance,
				Capacity: body.Capacity,
				Status:   status,
				Staff:    body.Staff,
				IsActive: true,
			}
			db := db.GetDb()
			err := db.Transaction(func(tx *gorm.DB) error {
				var dupes int64
				if err := tx.
					Model(&models.Counter{}).
					Where(&models.Counter{Name: body.Name}).
					Count(&dupes).
					Error; err != nil {
					return err
				}
				if dupes > 0 {
					return errors.New("a counter with this name already exists")
				}
				return tx.Create(&counter).Error
			})
			if err != nil {
				log.Printf("Error creating Counter: %s\n", err.Error())
				ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"counter": counter})
		}).
		PATCH("/counters/:id", middlewares.RequireRoles(types.ROLE_ORGANIZER), func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.UpdateCounterRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			updates := map[string]any{}
			if body.Entrance != nil {
				updates["entrance"] = *body.Entrance
			}
			if body.Capacity != nil {
				updates["capacity"] = *body.Capacity
			}
			if body.Status != nil {
				updates["status"] = *body.Status
			}
			if body.Staff != nil {
				updates["staff"] = *body.Staff
			}
			if body.IsActive != nil {
				updates["is_active"] = *body.IsActive
			}
			if len(updates) == 0 {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
				return
			}
			var counter models.Counter
			db := db.GetDb()
			err := db.Transaction(func(tx *gorm.DB) error {
				if err := tx.First(&counter, params.ID).Error; err != nil {
					return err
				}
				if err := tx.
					Model(&models.Counter{}).
					Where("id = ?", params.ID).
					Updates(updates).
					Error; err != nil {
					return err
				}
				return tx.First(&counter, params.ID).Error
			})
			if err != nil {
				log.Printf("Error updating Counter [%d]: %s\n", params.ID, err.Error())
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.Status(http.StatusNotFound)
					return
				}
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"counter": counter})
		})
	return g
}
