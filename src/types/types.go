package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type JSONB map[string]any
type JSONBArray []any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

func (a JSONBArray) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONBArray) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

type CounterStatus string

const (
	COUNTER_ENTRY CounterStatus = "Entry"
	COUNTER_EXIT  CounterStatus = "Exit"
	COUNTER_BOTH  CounterStatus = "Both"
)

type TicketType string

const (
	TICKET_INDIVIDUAL TicketType = "individual"
	TICKET_FAMILY     TicketType = "family"
)

type PaymentStatus string

const (
	PAYMENT_PENDING PaymentStatus = "pending"
	PAYMENT_PAID    PaymentStatus = "paid"
	PAYMENT_FAILED  PaymentStatus = "failed"
)

type SpotStatus string

const (
	SPOT_AVAILABLE   SpotStatus = "available"
	SPOT_OCCUPIED    SpotStatus = "occupied"
	SPOT_MAINTENANCE SpotStatus = "maintenance"
)

type ReservationStatus string

const (
	RESERVATION_CONFIRMED ReservationStatus = "confirmed"
	RESERVATION_CANCELED  ReservationStatus = "canceled"
	RESERVATION_COMPLETED ReservationStatus = "completed"
)

type TaskStatus string

const (
	TASK_PENDING     TaskStatus = "pending"
	TASK_IN_PROGRESS TaskStatus = "in_progress"
	TASK_DONE        TaskStatus = "done"
)

type IncidentStatus string

const (
	INCIDENT_OPEN     IncidentStatus = "open"
	INCIDENT_REVIEW   IncidentStatus = "review"
	INCIDENT_RESOLVED IncidentStatus = "resolved"
)

type Role string

const (
	ROLE_ADMIN       Role = "admin"
	ROLE_ORGANIZER   Role = "organizer"
	ROLE_COORDINATOR Role = "coordinator"
	ROLE_STAFF       Role = "staff"
	ROLE_ATTENDEE    Role = "attendee"
)

type CheckoutPayment struct {
	Method   string  `json:"method,omitempty"`
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Currency string  `json:"currency,omitempty"`
	CardNo   string  `json:"cardNo,omitempty"`
}

type CheckoutRequestBody struct {
	NIC       string          `json:"nic" binding:"required"`
	FullName  string          `json:"fullName" binding:"required"`
	Email     string          `json:"email" binding:"required,email"`
	Phone     string          `json:"phone,omitempty"`
	Type      string          `json:"type" binding:"required,oneof=individual family"`
	Count     uint            `json:"count,omitempty" binding:"omitempty,min=1"`
	Password  string          `json:"password,omitempty"`
	PaymentID string          `json:"paymentId" binding:"required"`
	Payment   CheckoutPayment `json:"payment" binding:"required"`
}

type ScanRequestBody struct {
	QR          string `json:"qr" binding:"required"`
	CounterID   *uint  `json:"counterId,omitempty"`
	CounterName string `json:"counterName,omitempty"`
	ScannedBy   string `json:"scannedBy,omitempty"`
}

type CreateReservationRequestBody struct {
	SpotID     uint    `json:"spotId" binding:"required"`
	StartTime  string  `json:"startTime" binding:"required" time_format:"2006-01-02 15:04:05 -07:00"`
	EndTime    string  `json:"endTime" binding:"required,gtdate=StartTime" time_format:"2006-01-02 15:04:05 -07:00"`
	PaymentID  string  `json:"paymentId" binding:"required"`
	PriceCents *int64  `json:"priceCents,omitempty" binding:"omitempty,gt=0"`
	Currency   string  `json:"currency,omitempty"`
	RenterName string  `json:"renterName,omitempty"`
	Email      string  `json:"email,omitempty" binding:"omitempty,email"`
	Phone      *string `json:"phone,omitempty"`
}

type CreateZoneRequestBody struct {
	Name       string     `json:"name" binding:"required"`
	Location   string     `json:"location,omitempty"`
	Capacity   uint       `json:"capacity" binding:"required,min=1"`
	Type       string     `json:"type,omitempty"`
	PriceCents int64      `json:"price,omitempty" binding:"omitempty,gt=0"`
	Facilities JSONBArray `json:"facilities,omitempty"`
}

type CreateCounterRequestBody struct {
	Name     string `json:"name" binding:"required"`
	Entrance string `json:"entrance,omitempty"`
	Capacity int    `json:"capacity,omitempty"`
	Status   string `json:"status,omitempty" binding:"omitempty,oneof=Entry Exit Both"`
	Staff    string `json:"staff,omitempty"`
}

type UpdateCounterRequestBody struct {
	Entrance *string `json:"entrance,omitempty"`
	Capacity *int    `json:"capacity,omitempty"`
	Status   *string `json:"status,omitempty" binding:"omitempty,oneof=Entry Exit Both"`
	Staff    *string `json:"staff,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

type CreateTaskRequestBody struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description,omitempty"`
	Coordinator uint    `json:"coordinator" binding:"required"`
	Priority    string  `json:"priority,omitempty" binding:"omitempty,oneof=low medium high"`
	Status      string  `json:"status,omitempty" binding:"omitempty,oneof=pending in_progress done"`
	DueDate     *string `json:"dueDate,omitempty" binding:"omitempty,bookabledate" time_format:"2006-01-02 15:04:05 -07:00"`
}

type UpdateTaskStatusRequestBody struct {
	Status string `json:"status" binding:"required,oneof=pending in_progress done"`
}

type UpdateSpotStatusRequestBody struct {
	Status string `json:"status" binding:"required,oneof=available maintenance"`
}

type RegisterUserRequestBody struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role,omitempty" binding:"omitempty,oneof=admin organizer coordinator staff attendee"`
}

type LoginRequestBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// QRTicketPayload is the decoded form of the pipe-delimited ticket QR string.
type QRTicketPayload struct {
	Version   int
	NIC       string
	Type      TicketType
	Count     uint
	Counter   string
	PaymentID string
}
