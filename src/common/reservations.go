package common

import (
	"log"
	"time"

	"cfms/src/db"
	"cfms/src/models"
	"cfms/src/types"

	"gorm.io/gorm"
)

// CompleteExpiredReservations marks confirmed reservations whose window
// has ended as completed and frees their spots. Runs from the scheduler.
func CompleteExpiredReservations() {
	d := db.GetDb()
	err := d.Transaction(func(tx *gorm.DB) error {
		var expired []models.Reservation
		if err := tx.
			Model(&models.Reservation{}).
			Where("status = ? AND end_time < ?", types.RESERVATION_CONFIRMED, time.Now()).
			Limit(500).
			Find(&expired).
			Error; err != nil {
			return err
		}
		if len(expired) == 0 {
			return nil
		}
		ids := make([]uint, 0, len(expired))
		spotIds := make([]uint, 0, len(expired))
		for _, r := range expired {
			ids = append(ids, r.ID)
			spotIds = append(spotIds, r.SpotID)
		}
		if err := tx.
			Model(&models.Reservation{}).
			Where("id IN (?)", ids).
			Update("status", types.RESERVATION_COMPLETED).
			Error; err != nil {
			return err
		}
		if err := tx.
			Model(&models.ParkingSpot{}).
			Where("id IN (?) AND status = ?", spotIds, types.SPOT_OCCUPIED).
			Update("status", types.SPOT_AVAILABLE).
			Error; err != nil {
			return err
		}
		log.Printf("Completed %d expired reservations\n", len(expired))
		return nil
	})
	if err != nil {
		log.Printf("Error completing expired reservations: %s\n", err.Error())
		return
	}
	InvalidateOccupancyCache()
}
