package models

import "cfms/src/types"

type IncidentReport struct {
	ID          uint                 `gorm:"primarykey" json:"id"`
	Title       string               `gorm:"not null" json:"title"`
	Description string               `json:"description,omitempty"`
	Location    string               `json:"location,omitempty"`
	Severity    string               `gorm:"default:'low'" json:"severity,omitempty"`
	Status      types.IncidentStatus `gorm:"default:'open'" json:"status"`
	PhotoURL    string               `json:"photo_url,omitempty"`
	ReportedBy  uint                 `json:"reported_by,omitempty"`

	types.Timestamps
}
