package utils

import (
	"strings"
	"testing"

	"cfms/src/models"
	"cfms/src/types"

	"github.com/stretchr/testify/assert"
)

func TestEncodeTicketQR(t *testing.T) {
	ticket := models.Ticket{
		NIC:         "853920441V",
		Type:        string(types.TICKET_FAMILY),
		Count:       4,
		CounterName: "North-2",
		PaymentID:   "pay_123",
	}
	payload := EncodeTicketQR(&ticket)
	assert.True(t, strings.HasPrefix(payload, "CF|"))
	assert.Contains(t, payload, "key=853920441V")
	assert.Contains(t, payload, "type=F")
	assert.Contains(t, payload, "count=4")
	assert.Contains(t, payload, "counter=North-2")
	assert.Contains(t, payload, "pid=pay_123")
}

func TestEncodeTicketQRUnassignedCounter(t *testing.T) {
	ticket := models.Ticket{
		NIC:       "853920441V",
		Type:      string(types.TICKET_INDIVIDUAL),
		Count:     1,
		PaymentID: "pay_456",
	}
	payload := EncodeTicketQR(&ticket)
	assert.Contains(t, payload, "type=I")
	assert.Contains(t, payload, "counter=unassigned")
}

func TestParseTicketQRRoundTrip(t *testing.T) {
	ticket := models.Ticket{
		NIC:         "90 1234-567",
		Type:        string(types.TICKET_FAMILY),
		Count:       3,
		CounterName: "Gate A/2",
		PaymentID:   "pi_3OaXYZ",
	}
	parsed, err := ParseTicketQR(EncodeTicketQR(&ticket))
	assert.Nil(t, err)
	assert.Equal(t, "90 1234-567", parsed.NIC)
	assert.Equal(t, types.TICKET_FAMILY, parsed.Type)
	assert.Equal(t, uint(3), parsed.Count)
	assert.Equal(t, "Gate A/2", parsed.Counter)
	assert.Equal(t, "pi_3OaXYZ", parsed.PaymentID)
}

func TestParseTicketQRRejectsForeignPayload(t *testing.T) {
	_, err := ParseTicketQR("https://example.com/some-random-qr")
	assert.NotNil(t, err)
}

func TestParseTicketQRIgnoresUnknownSegments(t *testing.T) {
	parsed, err := ParseTicketQR("CF|v=1|key=853920441V|type=I|count=1|future=thing|pid=pay_789")
	assert.Nil(t, err)
	assert.Equal(t, "853920441V", parsed.NIC)
	assert.Equal(t, types.TICKET_INDIVIDUAL, parsed.Type)
	assert.Equal(t, "pay_789", parsed.PaymentID)
}

func TestParseTicketQRRequiresPaymentId(t *testing.T) {
	_, err := ParseTicketQR("CF|v=1|key=853920441V|type=I|count=1")
	assert.NotNil(t, err)
}

func TestParseTicketQRRejectsBadCount(t *testing.T) {
	_, err := ParseTicketQR("CF|v=1|key=853920441V|type=F|count=zero|pid=pay_1")
	assert.NotNil(t, err)
}

func TestRenderQRDataURL(t *testing.T) {
	dataUrl, err := RenderQRDataURL("CF|v=1|key=853920441V|type=I|count=1|counter=unassigned|pid=pay_1")
	assert.Nil(t, err)
	assert.True(t, strings.HasPrefix(dataUrl, "data:image/jpeg;base64,"))
}
