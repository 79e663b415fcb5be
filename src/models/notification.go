package models

import "cfms/src/types"

type Notification struct {
	ID     uint   `gorm:"primarykey" json:"id"`
	UserID uint   `gorm:"index;not null" json:"user_id"`
	Title  string `json:"title"`
	Body   string `json:"body,omitempty"`
	Read   bool   `gorm:"default:false" json:"read"`

	types.Timestamps
}
