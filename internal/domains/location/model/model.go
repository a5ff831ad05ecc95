package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"trailguard/shared/model"
)

const (
	TableName  = "locations"
	EntityName = "location"

	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldLatitude    = "latitude"
	FieldLongitude   = "longitude"
	FieldQRImageURL  = "qr_image_url"
)

// QR payload types embedded in generated codes.
const (
	QRTypeCheckIn  = "check-in"
	QRTypeCheckOut = "check-out"
)

var ErrMalformedPayload = errors.New("malformed QR payload")

type Location struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	Description string  `db:"description"`
	Category    string  `db:"category"`
	Latitude    float64 `db:"latitude"`
	Longitude   float64 `db:"longitude"`
	QRImageURL  string  `db:"qr_image_url"`
	model.Metadata
}

// QRPayload is the JSON document encoded into every location QR code. The
// timestamp records when the code was generated and plays no part in any
// deadline math.
type QRPayload struct {
	LocationID   string `json:"locationId"`
	LocationName string `json:"locationName"`
	Timestamp    int64  `json:"timestamp"`
	Type         string `json:"type"`
}

// ParseQRPayload decodes a scanned QR string. Parse failures and missing
// required fields both count as a malformed payload.
func ParseQRPayload(raw string) (QRPayload, error) {
	var payload QRPayload

	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return QRPayload{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	if payload.LocationID == "" || payload.LocationName == "" || payload.Timestamp <= 0 {
		return QRPayload{}, fmt.Errorf("%w: missing required fields", ErrMalformedPayload)
	}

	if payload.Type != QRTypeCheckIn && payload.Type != QRTypeCheckOut {
		return QRPayload{}, fmt.Errorf("%w: unknown type %q", ErrMalformedPayload, payload.Type)
	}

	return payload, nil
}

// NewQRPayload builds the payload for a freshly generated code.
func NewQRPayload(loc Location, qrType string, now time.Time) QRPayload {
	return QRPayload{
		LocationID:   loc.ID,
		LocationName: loc.Name,
		Timestamp:    now.UnixMilli(),
		Type:         qrType,
	}
}

// Encode serializes the payload into the string written into the QR symbol.
func (p QRPayload) Encode() (string, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("failed to encode QR payload: %w", err)
	}

	return string(raw), nil
}
