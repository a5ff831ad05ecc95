package model

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	visitModel "trailguard/internal/domains/visit/model"
	"trailguard/shared/constant"
	"trailguard/shared/model"
)

const (
	TableName  = "safety_alerts"
	EntityName = "alert"

	FieldID           = "id"
	FieldVisitID      = "visit_id"
	FieldTouristID    = "tourist_id"
	FieldTouristName  = "tourist_name"
	FieldLocationName = "location_name"
	FieldAlertTime    = "alert_time"
	FieldAlertType    = "alert_type"
	FieldResolved     = "resolved"
	FieldResolvedTime = "resolved_time"
	FieldNotes        = "notes"
)

type AlertType string

const (
	AlertTypeOverdue AlertType = "overdue"

	// AlertTypeEmergency is reserved for a manual SOS trigger. Nothing
	// produces it yet.
	AlertTypeEmergency AlertType = "emergency"
)

// SafetyAlert references its visit by id only; tourist and location fields
// are denormalized copies so the feed renders without a join.
type SafetyAlert struct {
	ID           string       `db:"id"`
	VisitID      string       `db:"visit_id"`
	TouristID    string       `db:"tourist_id"`
	TouristName  string       `db:"tourist_name"`
	LocationName string       `db:"location_name"`
	AlertTime    time.Time    `db:"alert_time"`
	AlertType    AlertType    `db:"alert_type"`
	Resolved     bool         `db:"resolved"`
	ResolvedTime sql.NullTime `db:"resolved_time"`
	Notes        string       `db:"notes"`
	model.Metadata
}

// NewOverdueAlert builds the single alert raised for an overdue visit. The
// tourist phone doubles as the tourist identity key.
func NewOverdueAlert(visit visitModel.LocationVisit, now time.Time) SafetyAlert {
	return SafetyAlert{
		ID:           uuid.NewString(),
		VisitID:      visit.ID,
		TouristID:    visit.TouristPhone,
		TouristName:  visit.TouristName,
		LocationName: visit.LocationName,
		AlertTime:    now,
		AlertType:    AlertTypeOverdue,
		Resolved:     false,
		Metadata: model.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  constant.ContextSystem,
			ModifiedBy: constant.ContextSystem,
		},
	}
}

// Resolve closes the alert. Resolution never reopens an alert; callers must
// reject an already-resolved one.
func (a *SafetyAlert) Resolve(now time.Time, notes string) {
	a.Resolved = true
	a.ResolvedTime = sql.NullTime{Time: now, Valid: true}
	a.Notes = notes
}
