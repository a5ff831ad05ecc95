package model

import (
	"math"

	"trailguard/shared/model"
)

const (
	TableName  = "location_ratings"
	EntityName = "rating"

	FieldID           = "id"
	FieldLocationID   = "location_id"
	FieldTouristPhone = "tourist_phone"
	FieldRating       = "rating"
	FieldComment      = "comment"
	FieldCategory     = "category"
	FieldHelpfulCount = "helpful_count"
)

// Rating categories a review can be filed under.
const (
	CategorySafety      = "safety"
	CategoryEcoFriendly = "eco_friendly"
	CategoryCultural    = "cultural"
	CategoryGeneral     = "general"
)

type Rating struct {
	ID           string `db:"id"`
	LocationID   string `db:"location_id"`
	TouristPhone string `db:"tourist_phone"`
	Rating       int    `db:"rating"`
	Comment      string `db:"comment"`
	Category     string `db:"category"`
	HelpfulCount int    `db:"helpful_count"`
	model.Metadata
}

// AverageRating reports the mean star rating rounded to one decimal place.
// An empty slice averages to zero.
func AverageRating(ratings []Rating) float64 {
	if len(ratings) == 0 {
		return 0
	}

	sum := 0
	for _, rating := range ratings {
		sum += rating.Rating
	}

	return math.Round(float64(sum)/float64(len(ratings))*10) / 10
}
