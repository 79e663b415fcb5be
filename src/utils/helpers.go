package utils

import (
	"errors"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"
	"time"

	"cfms/src/config"
	"cfms/src/db"
	"cfms/src/lib"
	"cfms/src/lib/mailer"
	"cfms/src/models"
	"cfms/src/types"

	"gorm.io/gorm"
)

// SortCounters orders candidates by assignment preference: entry counters
// first, then lowest fill ratio, then lowest absolute load.
func SortCounters(counters []models.Counter) {
	sort.SliceStable(counters, func(i, j int) bool {
		a, b := counters[i], counters[j]
		if a.StatusPriority() != b.StatusPriority() {
			return a.StatusPriority() < b.StatusPriority()
		}
		if a.FillRatio() != b.FillRatio() {
			return a.FillRatio() < b.FillRatio()
		}
		return a.Load < b.Load
	})
}

// ChooseCounter returns the counter a party of the given size would be
// assigned to: the best-ranked counter with room, or the best-ranked
// counter overall when every counter is full (overflow is allowed rather
// than rejected). Returns nil for an empty candidate set.
func ChooseCounter(counters []models.Counter, people uint) *models.Counter {
	if len(counters) == 0 {
		return nil
	}
	SortCounters(counters)
	for i := range counters {
		if counters[i].HasRoom(people) {
			return &counters[i]
		}
	}
	return &counters[0]
}

// AssignCounter selects the least-loaded active counter for a party and
// durably records the increased load. The increment is a conditional
// compare-and-increment bounded by capacity; when the condition fails
// (a concurrent assignment filled the counter first) the next-best
// candidate is tried. If every counter is full the best-ranked one takes
// the party anyway.
func AssignCounter(tx *gorm.DB, people uint) (*models.Counter, error) {
	var counters []models.Counter
	if err := tx.
		Model(&models.Counter{}).
		Where("is_active = ?", true).
		Find(&counters).
		Error; err != nil {
		return nil, err
	}
	if len(counters) == 0 {
		return nil, ErrNoCountersAvailable
	}
	SortCounters(counters)
	for _, c := range counters {
		if !c.HasRoom(people) {
			continue
		}
		res := tx.
			Model(&models.Counter{}).
			Where("id = ? AND (capacity <= 0 OR load + ? <= capacity)", c.ID, people).
			UpdateColumn("load", gorm.Expr("load + ?", people))
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			log.Printf("Counter [%d] filled up concurrently, trying next candidate\n", c.ID)
			continue
		}
		var assigned models.Counter
		if err := tx.First(&assigned, c.ID).Error; err != nil {
			return nil, err
		}
		return &assigned, nil
	}
	overflow := counters[0]
	if err := tx.
		Model(&models.Counter{}).
		Where("id = ?", overflow.ID).
		UpdateColumn("load", gorm.Expr("load + ?", people)).
		Error; err != nil {
		return nil, err
	}
	log.Printf("All counters at capacity, overflowing party of %d onto counter [%d]\n", people, overflow.ID)
	var assigned models.Counter
	if err := tx.First(&assigned, overflow.ID).Error; err != nil {
		return nil, err
	}
	return &assigned, nil
}

// MaskCard keeps the last four digits of a card number.
func MaskCard(cardNo string) string {
	digits := strings.ReplaceAll(cardNo, " ", "")
	if len(digits) <= 4 {
		return digits
	}
	return strings.Repeat("*", len(digits)-4) + digits[len(digits)-4:]
}

// CreateCheckout registers an attendee, records payment, assigns a
// counter and issues the QR ticket. Replaying the same paymentId returns
// the previously issued ticket untouched.
func CreateCheckout(body *types.CheckoutRequestBody) (*models.Ticket, bool, error) {
	d := db.GetDb()

	var existing models.Ticket
	err := d.
		Where(&models.Ticket{PaymentID: body.PaymentID}).
		First(&existing).
		Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	count := body.Count
	if count < 1 {
		count = 1
	}
	if body.Type == string(types.TICKET_INDIVIDUAL) {
		count = 1
	}
	currency := body.Payment.Currency
	if currency == "" {
		currency = "usd"
	}

	ticket := models.Ticket{
		NIC:           body.NIC,
		FullName:      body.FullName,
		Email:         body.Email,
		Phone:         body.Phone,
		Type:          body.Type,
		Count:         count,
		PaymentID:     body.PaymentID,
		PaymentStatus: types.PAYMENT_PAID,
		Amount:        body.Payment.Amount,
		Currency:      currency,
		CardMasked:    MaskCard(body.Payment.CardNo),
	}

	err = d.Transaction(func(tx *gorm.DB) error {
		if body.Password != "" {
			var accounts int64
			if err := tx.
				Model(&models.User{}).
				Where(&models.User{Email: body.Email}).
				Count(&accounts).
				Error; err != nil {
				return err
			}
			// an attendee checking out again keeps their existing account
			if accounts == 0 {
				hash, err := HashPassword(body.Password)
				if err != nil {
					return err
				}
				user := models.User{
					Name:         body.FullName,
					Email:        body.Email,
					PasswordHash: hash,
					Role:         types.ROLE_ATTENDEE,
					IsActive:     true,
				}
				if err := tx.Create(&user).Error; err != nil {
					return err
				}
			}
		}

		if body.Type == string(types.TICKET_INDIVIDUAL) {
			var dupes int64
			if err := tx.
				Model(&models.Ticket{}).
				Where(&models.Ticket{NIC: body.NIC, Type: string(types.TICKET_INDIVIDUAL)}).
				Count(&dupes).
				Error; err != nil {
				return err
			}
			if dupes > 0 {
				return ErrDuplicateNIC
			}
		}

		counter, err := AssignCounter(tx, count)
		if err != nil {
			return err
		}
		ticket.CounterID = &counter.ID
		ticket.CounterName = counter.Name

		if body.Payment.Method == "card" && lib.StripeEnabled() {
			ref, err := lib.CreatePaymentIntent(int64(math.Round(body.Payment.Amount*100)), currency, body.PaymentID)
			if err != nil {
				log.Printf("Error creating payment intent for [%s]: %s\n", body.PaymentID, err.Error())
				return err
			}
			ticket.ProviderRef = ref
		}

		ticket.QRPayload = EncodeTicketQR(&ticket)
		dataURL, err := RenderQRDataURL(ticket.QRPayload)
		if err != nil {
			return err
		}
		ticket.QRImage = dataURL

		if err := tx.Create(&ticket).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	go func() {
		if err := mailer.Send(&mailer.SendMailInput{
			To:      ticket.Email,
			Subject: "Your entry ticket",
			Body:    fmt.Sprintf("Hi %s, your ticket for a party of %d is confirmed. Entry counter: %s.", ticket.FullName, ticket.Count, ticket.CounterName),
		}); err != nil {
			log.Printf("Error sending ticket confirmation to %s: %s\n", ticket.Email, err.Error())
		}
	}()

	return &ticket, true, nil
}

// CheckInTicket admits a scanned ticket and releases its counter load.
// Duplicate scans are rejected on both the ticket flag and a scan-log
// lookup, whichever trips first.
func CheckInTicket(payload *types.QRTicketPayload, counterId *uint, scannedBy string) (*models.Ticket, error) {
	d := db.GetDb()
	var ticket models.Ticket
	err := d.Transaction(func(tx *gorm.DB) error {
		err := tx.
			Where(&models.Ticket{PaymentID: payload.PaymentID}).
			First(&ticket).
			Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTicketNotFound
			}
			return err
		}
		if ticket.CheckedIn {
			return ErrAlreadyCheckedIn
		}
		var prior int64
		if err := tx.
			Model(&models.ScanLog{}).
			Where(&models.ScanLog{TicketID: ticket.ID}).
			Count(&prior).
			Error; err != nil {
			return err
		}
		if prior > 0 {
			return ErrAlreadyCheckedIn
		}

		scan := models.ScanLog{
			TicketID:  ticket.ID,
			CounterID: counterId,
			ScannedBy: scannedBy,
		}
		if err := tx.Create(&scan).Error; err != nil {
			return err
		}

		now := time.Now()
		if err := tx.
			Model(&models.Ticket{}).
			Where(&models.Ticket{ID: ticket.ID}).
			Updates(map[string]any{"checked_in": true, "checked_in_at": now}).
			Error; err != nil {
			return err
		}
		ticket.CheckedIn = true
		ticket.CheckedInAt = &now

		if ticket.CounterID != nil {
			if err := tx.
				Model(&models.Counter{}).
				Where("id = ?", *ticket.CounterID).
				UpdateColumn("load", gorm.Expr("GREATEST(load - ?, 0)", ticket.Count)).
				Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// BillableHours rounds a reservation window up to whole hours, minimum
// one. A non-positive window is invalid.
func BillableHours(start, end time.Time) (int64, error) {
	d := end.Sub(start)
	if d <= 0 {
		return 0, ErrInvalidWindow
	}
	minutes := int64(math.Ceil(d.Minutes()))
	hours := (minutes + 59) / 60
	if hours < 1 {
		hours = 1
	}
	return hours, nil
}

// CreateSpotReservation atomically flips a spot to occupied and records
// the reservation. Replaying the same paymentId returns the existing
// reservation. The overlap check is a look-ahead validation; the status
// flip remains the canonical guard.
func CreateSpotReservation(body *types.CreateReservationRequestBody) (*models.Reservation, bool, error) {
	start, err := time.Parse(config.TIME_PARSE_FORMAT, body.StartTime)
	if err != nil {
		return nil, false, fmt.Errorf("invalid startTime: %w", err)
	}
	end, err := time.Parse(config.TIME_PARSE_FORMAT, body.EndTime)
	if err != nil {
		return nil, false, fmt.Errorf("invalid endTime: %w", err)
	}
	hours, err := BillableHours(start, end)
	if err != nil {
		return nil, false, err
	}

	d := db.GetDb()
	var reservation models.Reservation
	replayed := false
	err = d.Transaction(func(tx *gorm.DB) error {
		err := tx.
			Where(&models.Reservation{PaymentID: body.PaymentID}).
			Preload("Spot").
			First(&reservation).
			Error
		if err == nil {
			replayed = true
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var overlaps int64
		if err := tx.
			Model(&models.Reservation{}).
			Where("spot_id = ? AND status = ? AND start_time < ? AND end_time > ?",
				body.SpotID, types.RESERVATION_CONFIRMED, end, start).
			Count(&overlaps).
			Error; err != nil {
			return err
		}
		if overlaps > 0 {
			return ErrWindowOverlap
		}

		res := tx.
			Model(&models.ParkingSpot{}).
			Where("id = ? AND status = ?", body.SpotID, types.SPOT_AVAILABLE).
			Update("status", types.SPOT_OCCUPIED)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var spot models.ParkingSpot
			if err := tx.First(&spot, body.SpotID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrSpotNotFound
				}
				return err
			}
			return &SpotUnavailableError{Status: spot.Status}
		}

		var spot models.ParkingSpot
		if err := tx.Preload("Zone").First(&spot, body.SpotID).Error; err != nil {
			return err
		}

		currency := body.Currency
		if currency == "" {
			currency = "usd"
		}
		var amount int64
		if body.PriceCents != nil {
			amount = *body.PriceCents
		} else {
			rate := config.DefaultHourlyRateCents()
			if spot.Zone != nil && spot.Zone.PriceCents > 0 {
				rate = spot.Zone.PriceCents
			}
			amount = rate * hours
		}

		reservation = models.Reservation{
			SpotID:      spot.ID,
			ZoneID:      &spot.ZoneID,
			RenterName:  body.RenterName,
			Email:       body.Email,
			Phone:       body.Phone,
			StartTime:   start,
			EndTime:     end,
			Hours:       hours,
			PaymentID:   body.PaymentID,
			AmountCents: amount,
			Currency:    currency,
			Status:      types.RESERVATION_CONFIRMED,
		}
		if err := tx.Create(&reservation).Error; err != nil {
			return err
		}
		reservation.Spot = &spot
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &reservation, replayed, nil
}

// CancelSpotReservation releases a reservation and frees its spot.
// Canceling an already-canceled reservation is a no-op success.
func CancelSpotReservation(id uint) (*models.Reservation, error) {
	d := db.GetDb()
	var reservation models.Reservation
	err := d.Transaction(func(tx *gorm.DB) error {
		err := tx.
			Where(&models.Reservation{ID: id}).
			First(&reservation).
			Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReservationNotFound
			}
			return err
		}
		if reservation.Status == types.RESERVATION_CANCELED {
			return nil
		}
		if err := tx.
			Model(&models.ParkingSpot{}).
			Where("id = ?", reservation.SpotID).
			Update("status", types.SPOT_AVAILABLE).
			Error; err != nil {
			return err
		}
		if err := tx.
			Model(&models.Reservation{}).
			Where("id = ?", reservation.ID).
			Update("status", types.RESERVATION_CANCELED).
			Error; err != nil {
			return err
		}
		reservation.Status = types.RESERVATION_CANCELED
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}
