package models

import "cfms/src/types"

type User struct {
	ID           uint       `gorm:"primarykey" json:"id"`
	Name         string     `json:"name,omitempty"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string     `json:"-"`
	Role         types.Role `gorm:"default:'attendee'" json:"role,omitempty"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`

	types.Timestamps
}
