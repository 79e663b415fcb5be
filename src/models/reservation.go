package models

import (
	"time"

	"cfms/src/types"
)

type Reservation struct {
	ID     uint  `gorm:"primarykey" json:"id"`
	SpotID uint  `gorm:"index;not null" json:"spot_id"`
	ZoneID *uint `json:"zone_id,omitempty"`

	RenterName string  `json:"renter_name,omitempty"`
	Email      string  `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Hours     int64     `json:"hours"`

	PaymentID   string  `gorm:"uniqueIndex;not null" json:"payment_id"`
	AmountCents int64   `json:"amount_cents"`
	Currency    string  `gorm:"default:'usd'" json:"currency,omitempty"`
	ProviderRef *string `json:"-"`

	Status types.ReservationStatus `gorm:"default:'confirmed'" json:"status"`

	Spot *ParkingSpot `gorm:"foreignKey:spot_id" json:"spot,omitempty"`

	types.Timestamps
}
