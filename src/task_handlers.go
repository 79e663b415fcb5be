package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"cfms/src/config"
	"cfms/src/db"
	"cfms/src/lib/mailer"
	"cfms/src/middlewares"
	"cfms/src/models"
	"cfms/src/types"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func taskHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/tasks", middlewares.RequireRoles(types.ROLE_STAFF, types.ROLE_COORDINATOR, types.ROLE_ORGANIZER), func(ctx *gin.Context) {
			var query struct {
				Coordinator *uint  `form:"coordinator"`
				Status      string `form:"status" binding:"omitempty,oneof=pending in_progress done"`
			}
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			q := db.Model(&models.Task{}).Preload("Assignee").Order("created_at desc").Limit(100)
			if query.Coordinator != nil {
				q = q.Where("coordinator = ?", *query.Coordinator)
			}
			if query.Status != "" {
				q = q.Where("status = ?", query.Status)
			}
			var tasks []models.Task
			if err := q.Find(&tasks).Error; err != nil {
				log.Printf("Error retrieving Tasks: %s\n", err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": tasks, "count": len(tasks)})
		}).
		POST("/tasks", middlewares.RequireRoles(types.ROLE_ORGANIZER, types.ROLE_COORDINATOR), func(ctx *gin.Context) {
			var body types.CreateTaskRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			priority := body.Priority
			if priority == "" {
				priority = "medium"
			}
			status := types.TaskStatus(body.Status)
			if body.Status == "" {
				status = types.TASK_PENDING
			}
			task := models.Task{
				Title:       body.Title,
				Description: body.Description,
				Coordinator: body.Coordinator,
				Priority:    priority,
				Status:      status,
				CreatedBy:   ctx.GetUint("id"),
			}
			if body.DueDate != nil {
				due, err := time.Parse(config.TIME_PARSE_FORMAT, *body.DueDate)
				if err != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				task.DueDate = &due
			}
			var coordinator models.User
			db := db.GetDb()
			err := db.Transaction(func(tx *gorm.DB) error {
				if err := tx.First(&coordinator, body.Coordinator).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return fmt.Errorf("coordinator %d does not exist", body.Coordinator)
					}
					return err
				}
				if err := tx.Create(&task).Error; err != nil {
					return err
				}
				notification := models.Notification{
					UserID: coordinator.ID,
					Title:  "New task assigned",
					Body:   fmt.Sprintf("%s (priority: %s)", task.Title, task.Priority),
				}
				return tx.Create(&notification).Error
			})
			if err != nil {
				log.Printf("Error creating Task: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			go func() {
				if coordinator.Email == "" {
					return
				}
				if err := mailer.Send(&mailer.SendMailInput{
					To:      coordinator.Email,
					Subject: "New task assigned",
					Body:    fmt.Sprintf("You have been assigned: %s", task.Title),
				}); err != nil {
					log.Printf("Error notifying coordinator [%d]: %s\n", coordinator.ID, err.Error())
				}
			}()
			ctx.JSON(http.StatusCreated, gin.H{"data": task})
		}).
		PATCH("/tasks/:id/status", middlewares.RequireRoles(types.ROLE_STAFF, types.ROLE_COORDINATOR, types.ROLE_ORGANIZER), func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.UpdateTaskStatusRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var task models.Task
			db := db.GetDb()
			err := db.Transaction(func(tx *gorm.DB) error {
				if err := tx.First(&task, params.ID).Error; err != nil {
					return err
				}
				if err := tx.
					Model(&models.Task{}).
					Where("id = ?", params.ID).
					Update("status", body.Status).
					Error; err != nil {
					return err
				}
				task.Status = types.TaskStatus(body.Status)
				return nil
			})
			if err != nil {
				log.Printf("Error updating Task [%d]: %s\n", params.ID, err.Error())
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.Status(http.StatusNotFound)
					return
				}
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": task})
		})
	return g
}
