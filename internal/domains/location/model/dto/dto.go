package dto

import (
	"github.com/google/uuid"

	"trailguard/internal/domains/location/model"
	"trailguard/shared"
	gDto "trailguard/shared/dto"
	gModel "trailguard/shared/model"
	"trailguard/shared/timezone"
)

type CreateLocationRequest struct {
	Name        string  `json:"name"        validate:"required,max=100"`
	Description string  `json:"description" validate:"omitempty,max=500"`
	Category    string  `json:"category"    validate:"omitempty,max=50"`
	Latitude    float64 `json:"latitude"    validate:"omitempty,latitude"`
	Longitude   float64 `json:"longitude"   validate:"omitempty,longitude"`
}

func (c *CreateLocationRequest) ToModel(user string) model.Location {
	return model.Location{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Description: c.Description,
		Category:    c.Category,
		Latitude:    c.Latitude,
		Longitude:   c.Longitude,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateLocationRequest struct {
	Name        string  `db:"name"        json:"name"        validate:"omitempty,max=100"`
	Description string  `db:"description" json:"description" validate:"omitempty,max=500"`
	Category    string  `db:"category"    json:"category"    validate:"omitempty,max=50"`
	Latitude    float64 `db:"latitude"    json:"latitude"    validate:"omitempty,latitude"`
	Longitude   float64 `db:"longitude"   json:"longitude"   validate:"omitempty,longitude"`
}

type LocationResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category,omitempty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	QRImageURL  string  `json:"qr_image_url,omitempty"`
	gDto.Metadata
}

func (r *LocationResponse) FromModel(mod model.Location) {
	r.ID = mod.ID
	r.Name = mod.Name
	r.Description = mod.Description
	r.Category = mod.Category
	r.Latitude = mod.Latitude
	r.Longitude = mod.Longitude
	r.QRImageURL = mod.QRImageURL
	r.Metadata.FromModel(mod.Metadata)
}

type GetLocationsResponse struct {
	Locations []LocationResponse `json:"locations"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetLocationsResponse) FromModels(models []model.Location, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Locations = make([]LocationResponse, len(models))
	for i, mod := range models {
		r.Locations[i].FromModel(mod)
	}
}

type GenerateQRResponse struct {
	LocationID string `json:"location_id"`
	Type       string `json:"type"`
	Payload    string `json:"payload"`
	ImageURL   string `json:"image_url"`
}
