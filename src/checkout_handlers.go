package main

import (
	"errors"
	"log"
	"net/http"

	"cfms/src/middlewares"
	"cfms/src/types"
	"cfms/src/utils"

	"github.com/gin-gonic/gin"
)

// checkoutHandlers sits on the guest group: first-time attendees register
// while paying. Scanning stays behind staff auth.
func checkoutHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/checkout", func(ctx *gin.Context) {
			var body types.CheckoutRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ticket, created, err := utils.CreateCheckout(&body)
			if err != nil {
				log.Printf("Error on checkout [%s]: %s\n", body.PaymentID, err.Error())
				if errors.Is(err, utils.ErrNoCountersAvailable) {
					ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
					return
				}
				if errors.Is(err, utils.ErrDuplicateNIC) {
					ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
					return
				}
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			status := http.StatusOK
			if created {
				status = http.StatusCreated
			}
			ctx.JSON(status, gin.H{
				"ticket": ticket,
				"qr":     gin.H{"dataUrl": ticket.QRImage},
			})
		}).
		POST("/checkout/scan", middlewares.AuthMiddleware, middlewares.RequireRoles(types.ROLE_STAFF, types.ROLE_COORDINATOR, types.ROLE_ORGANIZER), func(ctx *gin.Context) {
			var body types.ScanRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			payload, err := utils.ParseTicketQR(body.QR)
			if err != nil {
				log.Printf("Error parsing scanned QR: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ticket, err := utils.CheckInTicket(payload, body.CounterID, body.ScannedBy)
			if err != nil {
				log.Printf("Error on check-in [%s]: %s\n", payload.PaymentID, err.Error())
				if errors.Is(err, utils.ErrTicketNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
					return
				}
				if errors.Is(err, utils.ErrAlreadyCheckedIn) {
					ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
					return
				}
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"ticket": ticket})
		})
	return g
}
