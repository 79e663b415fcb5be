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

func ticketHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/tickets", middlewares.RequireRoles(types.ROLE_STAFF, types.ROLE_COORDINATOR, types.ROLE_ORGANIZER), func(ctx *gin.Context) {
			var query struct {
				CheckedIn *bool  `form:"checked_in"`
				Type      string `form:"type" binding:"omitempty,oneof=individual family"`
			}
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			q := db.Model(&models.Ticket{}).Order("created_at desc").Limit(100)
			if query.CheckedIn != nil {
				q = q.Where("checked_in = ?", *query.CheckedIn)
			}
			if query.Type != "" {
				q = q.Where("type = ?", query.Type)
			}
			var tickets []models.Ticket
			if err := q.Find(&tickets).Error; err != nil {
				log.Printf("Error retrieving Tickets: %s\n", err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": tickets, "count": len(tickets)})
		}).
		GET("/tickets/:id", middlewares.RequireRoles(types.ROLE_STAFF, types.ROLE_COORDINATOR, types.ROLE_ORGANIZER), func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var ticket models.Ticket
			db := db.GetDb()
			if err := db.
				Preload("Counter").
				First(&ticket, params.ID).
				Error; err != nil {
				log.Printf("Error retrieving Ticket [%d]: %s\n", params.ID, err.Error())
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.Status(http.StatusNotFound)
					return
				}
				ctx.Status(http.StatusBadRequest)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"ticket": ticket, "qr": gin.H{"dataUrl": ticket.QRImage}})
		})
	return g
}
