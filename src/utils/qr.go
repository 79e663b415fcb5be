package utils

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"cfms/src/config"
	"cfms/src/models"
	"cfms/src/types"

	"github.com/yeqown/go-qrcode"
)

// EncodeTicketQR builds the pipe-delimited payload embedded in a ticket's
// QR image. Segment order is fixed; values that may carry reserved
// characters are url-encoded.
func EncodeTicketQR(t *models.Ticket) string {
	typ := "I"
	if t.Type == string(types.TICKET_FAMILY) {
		typ = "F"
	}
	counter := t.CounterName
	if counter == "" {
		counter = "unassigned"
	}
	return fmt.Sprintf("%sv=%d|key=%s|type=%s|count=%d|counter=%s|pid=%s",
		config.QR_PAYLOAD_PREFIX,
		config.QR_PAYLOAD_VERSION,
		url.QueryEscape(t.NIC),
		typ,
		t.Count,
		url.QueryEscape(counter),
		url.QueryEscape(t.PaymentID),
	)
}

// ParseTicketQR decodes a scanned payload. The literal CF| prefix is
// required; unknown segments are ignored.
func ParseTicketQR(raw string) (*types.QRTicketPayload, error) {
	if !strings.HasPrefix(raw, config.QR_PAYLOAD_PREFIX) {
		return nil, fmt.Errorf("unrecognized QR payload")
	}
	payload := types.QRTicketPayload{
		Version: config.QR_PAYLOAD_VERSION,
		Type:    types.TICKET_INDIVIDUAL,
		Count:   1,
	}
	segments := strings.Split(strings.TrimPrefix(raw, config.QR_PAYLOAD_PREFIX), "|")
	for _, seg := range segments {
		k, v, found := strings.Cut(seg, "=")
		if !found {
			continue
		}
		switch k {
		case "v":
			if n, err := strconv.Atoi(v); err == nil {
				payload.Version = n
			}
		case "key":
			nic, err := url.QueryUnescape(v)
			if err != nil {
				return nil, fmt.Errorf("malformed key segment: %w", err)
			}
			payload.NIC = nic
		case "type":
			if v == "F" {
				payload.Type = types.TICKET_FAMILY
			} else {
				payload.Type = types.TICKET_INDIVIDUAL
			}
		case "count":
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				return nil, fmt.Errorf("malformed count segment: %q", v)
			}
			payload.Count = uint(n)
		case "counter":
			counter, err := url.QueryUnescape(v)
			if err != nil {
				return nil, fmt.Errorf("malformed counter segment: %w", err)
			}
			payload.Counter = counter
		case "pid":
			pid, err := url.QueryUnescape(v)
			if err != nil {
				return nil, fmt.Errorf("malformed pid segment: %w", err)
			}
			payload.PaymentID = pid
		}
	}
	if payload.PaymentID == "" {
		return nil, fmt.Errorf("QR payload is missing pid segment")
	}
	return &payload, nil
}

// RenderQRDataURL renders the payload as a JPEG QR image wrapped in a
// data URL, ready for the checkout response and dashboards.
func RenderQRDataURL(payload string) (string, error) {
	qrc, err := qrcode.New(payload)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := qrc.SaveTo(&buf); err != nil {
		return "", err
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
