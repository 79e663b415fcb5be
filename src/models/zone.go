package models

import "cfms/src/types"

type ParkingZone struct {
	ID         uint             `gorm:"primarykey" json:"id"`
	Name       string           `gorm:"uniqueIndex;not null" json:"name"`
	Slug       string           `json:"slug,omitempty"`
	Location   string           `json:"location,omitempty"`
	Capacity   uint             `json:"capacity"`
	Type       string           `gorm:"default:'standard'" json:"type,omitempty"`
	PriceCents int64            `json:"price,omitempty"`
	Facilities types.JSONBArray `gorm:"type:jsonb" json:"facilities,omitempty"`

	Spots []*ParkingSpot `gorm:"foreignKey:zone_id" json:"spots,omitempty"`

	types.Timestamps
}
