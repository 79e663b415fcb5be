package config

import (
	"fmt"
	"os"
	"strconv"
)

func GetDSN() string {
	DATABASE_HOST := os.Getenv("DATABASE_HOST")
	DATABASE_PORT := os.Getenv("DATABASE_PORT")
	DATABASE_SSLMODE := os.Getenv("DATABASE_SSLMODE")
	DATABASE_TIMEZONE := os.Getenv("DATABASE_TIMEZONE")
	DATABASE_USER := os.Getenv("DATABASE_USER")
	DATABASE_PASSWORD := os.Getenv("DATABASE_PASSWORD")
	DATABASE_NAME := os.Getenv("DATABASE_NAME")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s", DATABASE_HOST, DATABASE_USER, DATABASE_PASSWORD, DATABASE_NAME, DATABASE_PORT, DATABASE_SSLMODE, DATABASE_TIMEZONE)
	return dsn
}

const TIME_PARSE_FORMAT = "2006-01-02 15:04:05 -07:00"

// QR_PAYLOAD_PREFIX is the literal marker every ticket QR payload starts with.
const QR_PAYLOAD_PREFIX = "CF|"

const QR_PAYLOAD_VERSION = 1

// DefaultHourlyRateCents is the fallback parking rate used when a zone has
// no price and the reservation request carries no explicit price.
func DefaultHourlyRateCents() int64 {
	v := os.Getenv("PARKING_HOURLY_RATE_CENTS")
	cents, err := strconv.ParseInt(v, 10, 64)
	if err != nil || cents <= 0 {
		return 200
	}
	return cents
}

func UploadsDir() string {
	dir := os.Getenv("UPLOADS_DIR")
	if dir == "" {
		dir = "public/uploads"
	}
	return dir
}
