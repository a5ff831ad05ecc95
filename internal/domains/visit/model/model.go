package model

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"trailguard/shared/model"
)

const (
	TableName  = "location_visits"
	EntityName = "visit"

	FieldID                      = "id"
	FieldTouristName             = "tourist_name"
	FieldTouristPhone            = "tourist_phone"
	FieldEmergencyContact        = "emergency_contact"
	FieldLocationID              = "location_id"
	FieldLocationName            = "location_name"
	FieldCheckInTime             = "check_in_time"
	FieldCheckOutTime            = "check_out_time"
	FieldExpectedDurationMinutes = "expected_duration_minutes"
	FieldStatus                  = "status"
	FieldQRCode                  = "qr_code"
)

// GracePeriod is the fixed window past the expected duration before a visit
// counts as overdue.
const GracePeriod = 15 * time.Minute

// Status is the visit lifecycle state. Transitions only move forward:
// checked-in -> checked-out, or checked-in -> overdue -> alert-sent.
type Status string

const (
	StatusCheckedIn  Status = "checked-in"
	StatusCheckedOut Status = "checked-out"
	StatusOverdue    Status = "overdue"
	StatusAlertSent  Status = "alert-sent"
)

var ErrIllegalTransition = errors.New("illegal visit status transition")

type LocationVisit struct {
	ID                      string       `db:"id"`
	TouristName             string       `db:"tourist_name"`
	TouristPhone            string       `db:"tourist_phone"`
	EmergencyContact        string       `db:"emergency_contact"`
	LocationID              string       `db:"location_id"`
	LocationName            string       `db:"location_name"`
	CheckInTime             time.Time    `db:"check_in_time"`
	CheckOutTime            sql.NullTime `db:"check_out_time"`
	ExpectedDurationMinutes int          `db:"expected_duration_minutes"`
	Status                  Status       `db:"status"`
	QRCode                  string       `db:"qr_code"`
	model.Metadata
}

// Deadline is when the tourist was expected back, before grace.
func (v *LocationVisit) Deadline() time.Time {
	return v.CheckInTime.Add(time.Duration(v.ExpectedDurationMinutes) * time.Minute)
}

// Overdue reports whether the visit has blown past its deadline plus grace
// and is still open.
func (v *LocationVisit) Overdue(now time.Time) bool {
	return v.Status == StatusCheckedIn && now.After(v.Deadline().Add(GracePeriod))
}

// CheckOut closes an open visit and stamps the check-out time.
func (v *LocationVisit) CheckOut(now time.Time) error {
	if v.Status != StatusCheckedIn {
		return illegalTransition(v.Status, StatusCheckedOut)
	}

	v.Status = StatusCheckedOut
	v.CheckOutTime = sql.NullTime{Time: now, Valid: true}

	return nil
}

// MarkOverdue flips an open visit to overdue.
func (v *LocationVisit) MarkOverdue() error {
	if v.Status != StatusCheckedIn {
		return illegalTransition(v.Status, StatusOverdue)
	}

	v.Status = StatusOverdue

	return nil
}

// MarkAlertSent records that an alert has been raised for an overdue visit,
// gating it against ever being alerted twice.
func (v *LocationVisit) MarkAlertSent() error {
	if v.Status != StatusOverdue {
		return illegalTransition(v.Status, StatusAlertSent)
	}

	v.Status = StatusAlertSent

	return nil
}

func illegalTransition(from, to Status) error {
	return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, to)
}
