package main

import (
	"errors"
	"log"
	"net/http"

	"cfms/src/common"
	"cfms/src/db"
	"cfms/src/models"
	"cfms/src/types"
	"cfms/src/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func reservationHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/reservations", func(ctx *gin.Context) {
			var reservations []models.Reservation
			db := db.GetDb()
			if err := db.
				Preload("Spot").
				Order("created_at desc").
				Limit(100).
				Find(&reservations).
				Error; err != nil {
				log.Printf("Error retrieving Reservations: %s\n", err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": reservations, "count": len(reservations)})
		}).
		GET("/reservations/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var reservation models.Reservation
			db := db.GetDb()
			if err := db.
				Preload("Spot").
				Preload("Spot.Zone").
				First(&reservation, params.ID).
				Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.Status(http.StatusNotFound)
					return
				}
				ctx.Status(http.StatusBadRequest)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"reservation": reservation})
		}).
		POST("/reservations", func(ctx *gin.Context) {
			var body types.CreateReservationRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			reservation, replayed, err := utils.CreateSpotReservation(&body)
			if err != nil {
				log.Printf("Error creating Reservation [%s]: %s\n", body.PaymentID, err.Error())
				var unavailable *utils.SpotUnavailableError
				switch {
				case errors.Is(err, utils.ErrSpotNotFound):
					ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				case errors.As(err, &unavailable):
					ctx.JSON(http.StatusConflict, gin.H{"error": err.Error(), "status": unavailable.Status})
				case errors.Is(err, utils.ErrWindowOverlap):
					ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
				case errors.Is(err, utils.ErrInvalidWindow):
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				default:
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				}
				return
			}
			if !replayed {
				common.InvalidateOccupancyCache()
			}
			status := http.StatusCreated
			if replayed {
				status = http.StatusOK
			}
			ctx.JSON(status, gin.H{"reservation": reservation})
		}).
		PATCH("/reservations/:id/cancel", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			reservation, err := utils.CancelSpotReservation(params.ID)
			if err != nil {
				log.Printf("Error canceling Reservation [%d]: %s\n", params.ID, err.Error())
				if errors.Is(err, utils.ErrReservationNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
					return
				}
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			common.InvalidateOccupancyCache()
			ctx.JSON(http.StatusOK, gin.H{"reservation": reservation})
		})
	return g
}
