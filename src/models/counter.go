package models

import "cfms/src/types"

type Counter struct {
	ID       uint                `gorm:"primarykey" json:"id"`
	Name     string              `gorm:"uniqueIndex;not null" json:"name"`
	Entrance string              `json:"entrance,omitempty"`
	Status   types.CounterStatus `gorm:"default:'Entry'" json:"status,omitempty"`
	Capacity int                 `json:"capacity"`
	Load     int                 `gorm:"default:0;check:load >= 0" json:"load"`
	Staff    string              `json:"staff,omitempty"`
	IsActive bool                `gorm:"default:true" json:"is_active"`

	types.Timestamps
}

// HasRoom reports whether a party of n fits without exceeding capacity.
// A non-positive capacity means the counter is unbounded.
func (c Counter) HasRoom(n uint) bool {
	if c.Capacity <= 0 {
		return true
	}
	return c.Load+int(n) <= c.Capacity
}

// FillRatio is the secondary ranking key for assignment. Unbounded
// counters rank by raw load.
func (c Counter) FillRatio() float64 {
	if c.Capacity > 0 {
		return float64(c.Load) / float64(c.Capacity)
	}
	return float64(c.Load)
}

// StatusPriority ranks Entry counters first, Exit counters last.
func (c Counter) StatusPriority() int {
	switch c.Status {
	case types.COUNTER_ENTRY:
		return 0
	case types.COUNTER_BOTH:
		return 1
	case types.COUNTER_EXIT:
		return 2
	default:
		return 3
	}
}
