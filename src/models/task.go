package models

import (
	"time"

	"cfms/src/types"
)

type Task struct {
	ID          uint             `gorm:"primarykey" json:"id"`
	Title       string           `gorm:"not null" json:"title"`
	Description string           `json:"description,omitempty"`
	Coordinator uint             `gorm:"index" json:"coordinator"`
	Priority    string           `gorm:"default:'medium'" json:"priority,omitempty"`
	Status      types.TaskStatus `gorm:"default:'pending'" json:"status"`
	DueDate     *time.Time       `json:"due_date,omitempty"`
	CreatedBy   uint             `json:"created_by,omitempty"`

	Assignee *User `gorm:"foreignKey:coordinator" json:"assignee,omitempty"`

	types.Timestamps
}
