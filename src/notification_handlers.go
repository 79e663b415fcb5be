package main

import (
	"log"
	"net/http"

	"cfms/src/db"
	"cfms/src/models"
	"cfms/src/types"

	"github.com/gin-gonic/gin"
)

func notificationHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/notifications", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			var notifications []models.Notification
			db := db.GetDb()
			if err := db.
				Where(&models.Notification{UserID: userId}).
				Order("created_at desc").
				Limit(100).
				Find(&notifications).
				Error; err != nil {
				log.Printf("Error retrieving Notifications for user [%d]: %s\n", userId, err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": notifications, "count": len(notifications)})
		}).
		PATCH("/notifications/:id/read", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			db := db.GetDb()
			res := db.
				Model(&models.Notification{}).
				Where(&models.Notification{ID: params.ID, UserID: userId}).
				Update("read", true)
			if res.Error != nil {
				log.Printf("Error updating Notification [%d]: %s\n", params.ID, res.Error.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": res.Error.Error()})
				return
			}
			if res.RowsAffected == 0 {
				ctx.Status(http.StatusNotFound)
				return
			}
			ctx.Status(http.StatusOK)
		})
	return g
}
