package boot

import (
	"log"
	"os"
	"time"

	"cfms/src/common"
	"cfms/src/config"
	"cfms/src/db"
	"cfms/src/lib"
	"cfms/src/models"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.User{},
		&models.Counter{},
		&models.Ticket{},
		&models.ScanLog{},
		&models.ParkingZone{},
		&models.ParkingSpot{},
		&models.Reservation{},
		&models.Task{},
		&models.Notification{},
		&models.IncidentReport{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}

func InitScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("An error has occurred. Check logs for info")
		return
	}
	id, err := lib.CreateCronJob(common.CompleteExpiredReservations, 1*time.Minute)
	if err != nil {
		log.Printf("Error scheduling reservation sweep: %s\n", err.Error())
		return
	}
	log.Printf("Scheduled reservation sweep: %s\n", *id)
	sched.Start()
}

func StopScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("Error retrieving Scheduler. Check logs for info")
		return
	}
	if err := sched.Shutdown(); err != nil {
		log.Println("An error has occurred while stopping Scheduler. Check logs for info")
		return
	}
}

// EnsureUploadsDir creates the public directory incident photos are
// written to.
func EnsureUploadsDir() {
	dir := config.UploadsDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("Could not create uploads dir [%s]: %s\n", dir, err.Error())
	}
}
