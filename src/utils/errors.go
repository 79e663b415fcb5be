package utils

import (
	"errors"
	"fmt"

	"cfms/src/types"
)

var (
	ErrNoCountersAvailable = errors.New("no counters available")
	ErrAlreadyCheckedIn    = errors.New("ticket already checked in")
	ErrTicketNotFound      = errors.New("ticket not found")
	ErrSpotNotFound        = errors.New("parking spot not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrDuplicateNIC        = errors.New("an individual ticket already exists for this NIC")
	ErrInvalidWindow       = errors.New("end time must be after start time")
	ErrWindowOverlap       = errors.New("spot already reserved for an overlapping window")
)

// SpotUnavailableError is returned when the occupancy flip matches zero
// rows for an existing spot; it discloses the spot's actual status.
type SpotUnavailableError struct {
	Status types.SpotStatus
}

func (e *SpotUnavailableError) Error() string {
	return fmt.Sprintf("spot is not available (current status: %s)", e.Status)
}
