package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"trailguard/internal/domains/visit/model"
)

func openVisit(checkIn time.Time, durationMinutes int) model.LocationVisit {
	return model.LocationVisit{
		ID:                      "visit-1",
		TouristName:             "Budi Santoso",
		TouristPhone:            "+628123456789",
		LocationID:              "loc-1",
		LocationName:            "Mount Rinjani Trailhead",
		CheckInTime:             checkIn,
		ExpectedDurationMinutes: durationMinutes,
		Status:                  model.StatusCheckedIn,
	}
}

func TestLocationVisit_Deadline(t *testing.T) {
	checkIn := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	visit := openVisit(checkIn, 120)

	assert.Equal(t, checkIn.Add(2*time.Hour), visit.Deadline())
}

func TestLocationVisit_Overdue(t *testing.T) {
	checkIn := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	visit := openVisit(checkIn, 60)

	deadline := visit.Deadline()

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{
			name: "before deadline",
			now:  deadline.Add(-time.Minute),
			want: false,
		},
		{
			name: "inside grace window",
			now:  deadline.Add(14 * time.Minute),
			want: false,
		},
		{
			name: "exactly at grace boundary",
			now:  deadline.Add(model.GracePeriod),
			want: false,
		},
		{
			name: "past grace window",
			now:  deadline.Add(16 * time.Minute),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, visit.Overdue(tt.now))
		})
	}
}

func TestLocationVisit_OverdueIgnoresClosedVisits(t *testing.T) {
	checkIn := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	wayPast := checkIn.Add(24 * time.Hour)

	for _, status := range []model.Status{model.StatusCheckedOut, model.StatusOverdue, model.StatusAlertSent} {
		visit := openVisit(checkIn, 30)
		visit.Status = status

		assert.False(t, visit.Overdue(wayPast), "status %s must never re-trip the overdue check", status)
	}
}

func TestLocationVisit_CheckOut(t *testing.T) {
	checkIn := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	now := checkIn.Add(45 * time.Minute)

	visit := openVisit(checkIn, 60)

	err := visit.CheckOut(now)

	assert.NoError(t, err)
	assert.Equal(t, model.StatusCheckedOut, visit.Status)
	assert.True(t, visit.CheckOutTime.Valid)
	assert.Equal(t, now, visit.CheckOutTime.Time)
}

func TestLocationVisit_CheckOutRejectsClosedVisit(t *testing.T) {
	checkIn := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	for _, status := range []model.Status{model.StatusCheckedOut, model.StatusOverdue, model.StatusAlertSent} {
		visit := openVisit(checkIn, 60)
		visit.Status = status

		err := visit.CheckOut(checkIn.Add(time.Hour))

		assert.ErrorIs(t, err, model.ErrIllegalTransition)
		assert.Equal(t, status, visit.Status)
	}
}

func TestLocationVisit_MarkOverdue(t *testing.T) {
	checkIn := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	visit := openVisit(checkIn, 60)

	assert.NoError(t, visit.MarkOverdue())
	assert.Equal(t, model.StatusOverdue, visit.Status)

	// A second pass must not take the same transition again.
	assert.ErrorIs(t, visit.MarkOverdue(), model.ErrIllegalTransition)
}

func TestLocationVisit_MarkAlertSent(t *testing.T) {
	checkIn := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	visit := openVisit(checkIn, 60)

	// Straight from checked-in is not allowed, the visit must pass through
	// overdue first.
	assert.ErrorIs(t, visit.MarkAlertSent(), model.ErrIllegalTransition)

	assert.NoError(t, visit.MarkOverdue())
	assert.NoError(t, visit.MarkAlertSent())
	assert.Equal(t, model.StatusAlertSent, visit.Status)

	assert.ErrorIs(t, visit.MarkAlertSent(), model.ErrIllegalTransition)
}
