package feed

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/waytodrive/orderadmin/internal/domain/model"
)

// RawItem is one line item of an upstream order document.
type RawItem struct {
	Name        string `json:"name"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	Size        string `json:"size"`
}

// RawRecord mirrors one document of the external order store. Every field is
// optional; the normalizer supplies fallbacks for whatever is missing.
type RawRecord struct {
	Name          string          `json:"name,omitempty"`
	Phone         string          `json:"phone,omitempty"`
	Address       string          `json:"address,omitempty"`
	UserLocation  *model.GeoPoint `json:"userLocation,omitempty"`
	Items         []RawItem       `json:"items,omitempty"`
	Quantity      int             `json:"quantity,omitempty"`
	Size          string          `json:"size,omitempty"`
	OrderItem     string          `json:"orderItem,omitempty"`
	ProductName   string          `json:"productName,omitempty"`
	PickupAddress string          `json:"pickupAddress,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	Total         *float64        `json:"total,omitempty"`
	Price         *float64        `json:"price,omitempty"`
	Status        string          `json:"status,omitempty"`
	CreatedAt     Timestamp       `json:"createdAt,omitempty"`
	ReceivedAt    Timestamp       `json:"receivedAt,omitempty"`
	DeliveredAt   Timestamp       `json:"deliveredAt,omitempty"`
	UpdatedAt     Timestamp       `json:"updatedAt,omitempty"`
}

// Timestamp accepts every timestamp shape the external store is known to
// emit: an RFC 3339 string, a `{seconds, nanoseconds}` object, or a numeric
// epoch value. A zero Timestamp means the field was absent upstream.
type Timestamp struct {
	Time  time.Time
	Valid bool
}

// At builds a valid Timestamp from a concrete instant.
func At(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC(), Valid: true}
}

type secondsShape struct {
	Seconds     int64 `json:"seconds"`
	Nanoseconds int64 `json:"nanoseconds"`
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// UnmarshalJSON coerces any supported upstream shape into UTC time. Values it
// cannot interpret leave the Timestamp invalid rather than failing the whole
// record.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	ts.Time, ts.Valid = time.Time{}, false

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" {
			return nil
		}
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				ts.Time, ts.Valid = t.UTC(), true
				return nil
			}
		}
		return nil
	}

	var shape secondsShape
	if err := json.Unmarshal(data, &shape); err == nil && shape.Seconds != 0 {
		ts.Time, ts.Valid = time.Unix(shape.Seconds, shape.Nanoseconds).UTC(), true
		return nil
	}

	var epoch float64
	if err := json.Unmarshal(data, &epoch); err == nil && epoch != 0 {
		sec := int64(epoch)
		nsec := int64((epoch - float64(sec)) * float64(time.Second))
		ts.Time, ts.Valid = time.Unix(sec, nsec).UTC(), true
	}
	return nil
}

// MarshalJSON encodes the canonical ISO-8601 UTC representation, or null for
// an absent value.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if !ts.Valid {
		return []byte("null"), nil
	}
	return strconv.AppendQuote(nil, ts.Time.UTC().Format(time.RFC3339Nano)), nil
}

// Or returns the carried instant, or fallback when the value is absent.
func (ts Timestamp) Or(fallback time.Time) time.Time {
	if ts.Valid {
		return ts.Time
	}
	return fallback.UTC()
}
