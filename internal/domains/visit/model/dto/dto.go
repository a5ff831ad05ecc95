package dto

import (
	"github.com/google/uuid"

	locationModel "trailguard/internal/domains/location/model"
	"trailguard/internal/domains/visit/model"
	"trailguard/shared"
	"trailguard/shared/constant"
	gDto "trailguard/shared/dto"
	gModel "trailguard/shared/model"
	"trailguard/shared/timezone"
)

type CheckInRequest struct {
	TouristName      string `json:"tourist_name"      validate:"required,max=100"`
	TouristPhone     string `json:"tourist_phone"     validate:"required,max=20"`
	EmergencyContact string `json:"emergency_contact" validate:"omitempty,max=100"`
	QRCode           string `json:"qr_code"           validate:"required"`
	ExpectedDuration int    `json:"expected_duration" validate:"required,gt=0"`
}

func (c *CheckInRequest) ToModel(payload locationModel.QRPayload, user string) model.LocationVisit {
	return model.LocationVisit{
		ID:                      uuid.NewString(),
		TouristName:             c.TouristName,
		TouristPhone:            c.TouristPhone,
		EmergencyContact:        c.EmergencyContact,
		LocationID:              payload.LocationID,
		LocationName:            payload.LocationName,
		CheckInTime:             timezone.Now(),
		ExpectedDurationMinutes: c.ExpectedDuration,
		Status:                  model.StatusCheckedIn,
		QRCode:                  c.QRCode,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type CheckOutRequest struct {
	TouristPhone string `json:"tourist_phone" validate:"required,max=20"`
	QRCode       string `json:"qr_code"       validate:"required"`
}

type CheckInResponse struct {
	ID string `json:"id"`
}

type VisitResponse struct {
	ID               string `json:"id"`
	TouristName      string `json:"tourist_name"`
	TouristPhone     string `json:"tourist_phone"`
	EmergencyContact string `json:"emergency_contact,omitempty"`
	LocationID       string `json:"location_id"`
	LocationName     string `json:"location_name"`
	CheckInTime      string `json:"check_in_time"`
	CheckOutTime     string `json:"check_out_time,omitempty"`
	ExpectedDuration int    `json:"expected_duration"`
	Status           string `json:"status"`
	gDto.Metadata
}

func (r *VisitResponse) FromModel(mod model.LocationVisit) {
	r.ID = mod.ID
	r.TouristName = mod.TouristName
	r.TouristPhone = mod.TouristPhone
	r.EmergencyContact = mod.EmergencyContact
	r.LocationID = mod.LocationID
	r.LocationName = mod.LocationName
	r.CheckInTime = mod.CheckInTime.Format(constant.DateFormat)
	r.ExpectedDuration = mod.ExpectedDurationMinutes
	r.Status = string(mod.Status)

	if mod.CheckOutTime.Valid {
		r.CheckOutTime = mod.CheckOutTime.Time.Format(constant.DateFormat)
	}

	r.Metadata.FromModel(mod.Metadata)
}

type GetVisitsResponse struct {
	Visits    []VisitResponse `json:"visits"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetVisitsResponse) FromModels(models []model.LocationVisit, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Visits = make([]VisitResponse, len(models))
	for i, mod := range models {
		r.Visits[i].FromModel(mod)
	}
}
