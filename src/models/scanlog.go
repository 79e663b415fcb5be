package models

import "cfms/src/types"

// ScanLog records every accepted check-in scan. Its existence per ticket
// is the second guard against duplicate admission, next to the ticket's
// checked_in flag.
type ScanLog struct {
	ID        uint   `gorm:"primarykey" json:"id"`
	TicketID  uint   `gorm:"uniqueIndex;not null" json:"ticket_id"`
	CounterID *uint  `json:"counter_id,omitempty"`
	ScannedBy string `json:"scanned_by,omitempty"`
	Result    string `gorm:"default:'admitted'" json:"result,omitempty"`

	Ticket *Ticket `gorm:"foreignKey:ticket_id" json:"ticket,omitempty"`

	types.Timestamps
}
