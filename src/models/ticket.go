package models

import (
	"time"

	"cfms/src/types"
)

type Ticket struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	NIC      string `gorm:"uniqueIndex:idx_tickets_individual_nic,where:type = 'individual';not null" json:"nic"`
	Type     string `gorm:"default:'individual'" json:"type"`
	FullName string `json:"full_name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Count    uint   `gorm:"default:1" json:"count"`

	PaymentID     string              `gorm:"uniqueIndex;not null" json:"payment_id"`
	PaymentStatus types.PaymentStatus `gorm:"default:'paid'" json:"payment_status,omitempty"`
	Amount        float64             `json:"amount,omitempty"`
	Currency      string              `json:"currency,omitempty"`
	CardMasked    string              `json:"card_masked,omitempty"`
	ProviderRef   *string             `json:"-"`

	QRPayload string `json:"qr_payload,omitempty"`
	QRImage   string `gorm:"type:text" json:"-"`

	CounterID   *uint  `json:"counter_id,omitempty"`
	CounterName string `json:"counter_name,omitempty"`

	CheckedIn   bool       `gorm:"default:false" json:"checked_in"`
	CheckedInAt *time.Time `json:"checked_in_at,omitempty"`

	Counter *Counter `gorm:"foreignKey:counter_id" json:"counter,omitempty"`

	types.Timestamps
}
