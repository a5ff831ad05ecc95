package dto_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	locationModel "trailguard/internal/domains/location/model"
	"trailguard/internal/domains/visit/model"
	"trailguard/internal/domains/visit/model/dto"
)

func TestCheckInRequest_ToModel(t *testing.T) {
	req := dto.CheckInRequest{
		TouristName:      "Budi Santoso",
		TouristPhone:     "+628123456789",
		EmergencyContact: "+628198765432",
		QRCode:           `{"locationId":"loc-1","locationName":"Sekumpul Waterfall","timestamp":1748767200000,"type":"check-in"}`,
		ExpectedDuration: 120,
	}

	payload := locationModel.QRPayload{
		LocationID:   "loc-1",
		LocationName: "Sekumpul Waterfall",
		Timestamp:    1748767200000,
		Type:         locationModel.QRTypeCheckIn,
	}

	visit := req.ToModel(payload, "officer-1")

	assert.NotEmpty(t, visit.ID)
	assert.Equal(t, "Budi Santoso", visit.TouristName)
	assert.Equal(t, "loc-1", visit.LocationID)
	assert.Equal(t, "Sekumpul Waterfall", visit.LocationName)
	assert.Equal(t, 120, visit.ExpectedDurationMinutes)
	assert.Equal(t, model.StatusCheckedIn, visit.Status)
	assert.False(t, visit.CheckOutTime.Valid)
	assert.Equal(t, "officer-1", visit.CreatedBy)
	assert.False(t, visit.CheckInTime.IsZero())
}

func TestVisitResponse_FromModel(t *testing.T) {
	checkIn := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	checkOut := checkIn.Add(90 * time.Minute)

	t.Run("open visit omits check-out time", func(t *testing.T) {
		var res dto.VisitResponse
		res.FromModel(model.LocationVisit{
			ID:          "visit-1",
			CheckInTime: checkIn,
			Status:      model.StatusCheckedIn,
		})

		assert.Equal(t, "visit-1", res.ID)
		assert.Equal(t, string(model.StatusCheckedIn), res.Status)
		assert.Empty(t, res.CheckOutTime)
	})

	t.Run("closed visit carries check-out time", func(t *testing.T) {
		var res dto.VisitResponse
		res.FromModel(model.LocationVisit{
			ID:           "visit-1",
			CheckInTime:  checkIn,
			CheckOutTime: sql.NullTime{Time: checkOut, Valid: true},
			Status:       model.StatusCheckedOut,
		})

		assert.NotEmpty(t, res.CheckOutTime)
		assert.Equal(t, string(model.StatusCheckedOut), res.Status)
	})
}

func TestGetVisitsResponse_FromModels(t *testing.T) {
	var res dto.GetVisitsResponse

	res.FromModels([]model.LocationVisit{
		{ID: "visit-1", Status: model.StatusCheckedIn},
		{ID: "visit-2", Status: model.StatusCheckedOut},
	}, 12, 10)

	assert.Len(t, res.Visits, 2)
	assert.Equal(t, 12, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
}
