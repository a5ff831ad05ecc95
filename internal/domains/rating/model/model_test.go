package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"trailguard/internal/domains/rating/model"
)

func TestAverageRating(t *testing.T) {
	stars := func(values ...int) []model.Rating {
		ratings := make([]model.Rating, len(values))
		for i, v := range values {
			ratings[i] = model.Rating{Rating: v}
		}

		return ratings
	}

	tests := []struct {
		name     string
		ratings  []model.Rating
		expected float64
	}{
		{
			name:     "no reviews",
			ratings:  nil,
			expected: 0,
		},
		{
			name:     "single review",
			ratings:  stars(4),
			expected: 4,
		},
		{
			name:     "rounds to one decimal",
			ratings:  stars(5, 4, 4),
			expected: 4.3,
		},
		{
			name:     "rounds up at the midpoint",
			ratings:  stars(4, 5),
			expected: 4.5,
		},
		{
			name:     "mixed reviews",
			ratings:  stars(1, 2, 5, 5, 3),
			expected: 3.2,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.InDelta(t, test.expected, model.AverageRating(test.ratings), 0.001)
		})
	}
}
