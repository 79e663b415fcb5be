package models

import "cfms/src/types"

type ParkingSpot struct {
	ID     uint             `gorm:"primarykey" json:"id"`
	ZoneID uint             `gorm:"index:idx_spots_zone_label,unique" json:"zone_id"`
	Label  string           `gorm:"index:idx_spots_zone_label,unique;not null" json:"label"`
	Type   string           `gorm:"default:'standard'" json:"type,omitempty"`
	Status types.SpotStatus `gorm:"default:'available'" json:"status"`

	Zone *ParkingZone `gorm:"foreignKey:zone_id" json:"zone,omitempty"`

	types.Timestamps
}
