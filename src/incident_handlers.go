package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"cfms/src/config"
	"cfms/src/db"
	"cfms/src/middlewares"
	"cfms/src/models"
	"cfms/src/types"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func incidentHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/incidents", middlewares.RequireRoles(types.ROLE_STAFF, types.ROLE_COORDINATOR, types.ROLE_ORGANIZER), func(ctx *gin.Context) {
			var query struct {
				Status string `form:"status" binding:"omitempty,oneof=open review resolved"`
			}
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			q := db.Model(&models.IncidentReport{}).Order("created_at desc").Limit(100)
			if query.Status != "" {
				q = q.Where("status = ?", query.Status)
			}
			var incidents []models.IncidentReport
			if err := q.Find(&incidents).Error; err != nil {
				log.Printf("Error retrieving Incidents: %s\n", err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": incidents, "count": len(incidents)})
		}).
		POST("/incidents", middlewares.RequireRoles(types.ROLE_STAFF, types.ROLE_COORDINATOR, types.ROLE_ORGANIZER), func(ctx *gin.Context) {
			var body struct {
				Title       string `form:"title" binding:"required"`
				Description string `form:"description"`
				Location    string `form:"location"`
				Severity    string `form:"severity" binding:"omitempty,oneof=low medium high"`
			}
			if err := ctx.ShouldBind(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			severity := body.Severity
			if severity == "" {
				severity = "low"
			}
			incident := models.IncidentReport{
				Title:       body.Title,
				Description: body.Description,
				Location:    body.Location,
				Severity:    severity,
				Status:      types.INCIDENT_OPEN,
				ReportedBy:  ctx.GetUint("id"),
			}

			// photo uploads land in the public dir; the record carries the URL
			if file, err := ctx.FormFile("photo"); err == nil {
				ext := strings.ToLower(filepath.Ext(file.Filename))
				if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": "unsupported photo format"})
					return
				}
				filename := fmt.Sprintf("incident_%s%s", uuid.New().String(), ext)
				dst := path.Join(config.UploadsDir(), filename)
				if err := ctx.SaveUploadedFile(file, dst); err != nil {
					log.Printf("Error saving incident photo: %s\n", err.Error())
					ctx.JSON(http.StatusBadRequest, gin.H{"error": "could not save photo"})
					return
				}
				incident.PhotoURL = "/" + dst
			}

			db := db.GetDb()
			if err := db.Create(&incident).Error; err != nil {
				log.Printf("Error creating Incident: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": incident})
		}).
		PATCH("/incidents/:id/status", middlewares.RequireRoles(types.ROLE_COORDINATOR, types.ROLE_ORGANIZER), func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body struct {
				Status string `json:"status" binding:"required,oneof=open review resolved"`
			}
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var incident models.IncidentReport
			db := db.GetDb()
			err := db.Transaction(func(tx *gorm.DB) error {
				if err := tx.First(&incident, params.ID).Error; err != nil {
					return err
				}
				if err := tx.
					Model(&models.IncidentReport{}).
					Where("id = ?", params.ID).
					Update("status", body.Status).
					Error; err != nil {
					return err
				}
				incident.Status = types.IncidentStatus(body.Status)
				return nil
			})
			if err != nil {
				log.Printf("Error updating Incident [%d]: %s\n", params.ID, err.Error())
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.Status(http.StatusNotFound)
					return
				}
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": incident})
		})
	return g
}
