package dto

import (
	"github.com/google/uuid"

	"trailguard/internal/domains/rating/model"
	gDto "trailguard/shared/dto"
	gModel "trailguard/shared/model"
	"trailguard/shared/timezone"
)

type SubmitRatingRequest struct {
	LocationID   string `json:"location_id"   validate:"required,max=36"`
	TouristPhone string `json:"tourist_phone" validate:"required,max=20"`
	Rating       int    `json:"rating"        validate:"required,min=1,max=5"`
	Comment      string `json:"comment"       validate:"omitempty,max=500"`
	Category     string `json:"category"      validate:"required,oneof=safety eco_friendly cultural general"`
}

func (c *SubmitRatingRequest) ToModel(user string) model.Rating {
	return model.Rating{
		ID:           uuid.NewString(),
		LocationID:   c.LocationID,
		TouristPhone: c.TouristPhone,
		Rating:       c.Rating,
		Comment:      c.Comment,
		Category:     c.Category,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type SubmitRatingResponse struct {
	ID string `json:"id"`
}

type RatingResponse struct {
	ID           string `json:"id"`
	LocationID   string `json:"location_id"`
	TouristPhone string `json:"tourist_phone"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment,omitempty"`
	Category     string `json:"category"`
	HelpfulCount int    `json:"helpful_count"`
	gDto.Metadata
}

func (r *RatingResponse) FromModel(mod model.Rating) {
	r.ID = mod.ID
	r.LocationID = mod.LocationID
	r.TouristPhone = mod.TouristPhone
	r.Rating = mod.Rating
	r.Comment = mod.Comment
	r.Category = mod.Category
	r.HelpfulCount = mod.HelpfulCount
	r.Metadata.FromModel(mod.Metadata)
}

// GetRatingsResponse carries every review of a location along with the
// aggregate figures computed over the full set.
type GetRatingsResponse struct {
	Ratings       []RatingResponse `json:"ratings"`
	AverageRating float64          `json:"average_rating"`
	TotalReviews  int              `json:"total_reviews"`
}

func (r *GetRatingsResponse) FromModels(models []model.Rating) {
	r.TotalReviews = len(models)
	r.AverageRating = model.AverageRating(models)

	r.Ratings = make([]RatingResponse, len(models))
	for i, mod := range models {
		r.Ratings[i].FromModel(mod)
	}
}
