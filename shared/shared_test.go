package shared_test

import (
	"testing"
	"time"

	"trailguard/shared"
	"trailguard/shared/constant"
	"trailguard/shared/dto"
)

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{
			name:     "zero total",
			total:    0,
			limit:    10,
			expected: 1,
		},
		{
			name:     "zero limit",
			total:    25,
			limit:    0,
			expected: 1,
		},
		{
			name:     "exact division",
			total:    20,
			limit:    10,
			expected: 2,
		},
		{
			name:     "partial last page",
			total:    21,
			limit:    10,
			expected: 3,
		},
		{
			name:     "single page",
			total:    3,
			limit:    10,
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shared.CalculateTotalPage(tt.total, tt.limit); got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestTransformFields(t *testing.T) {
	type updateRequest struct {
		Name      string    `db:"name"`
		Category  string    `db:"category"`
		LastLogin time.Time `db:"last_login"`
		Ignored   string
	}

	req := updateRequest{
		Name:    "Sekumpul Waterfall",
		Ignored: "no db tag",
	}

	fields := shared.TransformFields(req, "officer-1")

	if fields["name"] != "Sekumpul Waterfall" {
		t.Errorf("expected name to be set, got %v", fields["name"])
	}

	if _, ok := fields["category"]; ok {
		t.Error("zero-valued fields must be skipped")
	}

	if _, ok := fields["last_login"]; ok {
		t.Error("zero-valued time fields must be skipped")
	}

	if fields[constant.FieldModifiedBy] != "officer-1" {
		t.Errorf("expected modified_by to be officer-1, got %v", fields[constant.FieldModifiedBy])
	}

	if _, ok := fields[constant.FieldModifiedAt]; !ok {
		t.Error("modified_at must always be stamped")
	}
}

func TestBuildCacheKey(t *testing.T) {
	if got := shared.BuildCacheKey("visit:get"); got != "visit:get" {
		t.Errorf("expected prefix only, got %s", got)
	}

	if got := shared.BuildCacheKey("visit:get", "visit-1"); got != "visit:get:visit-1" {
		t.Errorf("expected joined key, got %s", got)
	}
}

func TestBuildCacheKeyWithQueryIsDeterministic(t *testing.T) {
	params := dto.QueryParams{
		Page:    1,
		Limit:   10,
		SortBy:  "check_in_time",
		SortDir: dto.SortDirDesc,
	}

	filter := shared.FilterByID("visit-1", "id", "location_visits")

	first := shared.BuildCacheKeyWithQuery("visit:gets", params, filter)
	second := shared.BuildCacheKeyWithQuery("visit:gets", params, filter)

	if first != second {
		t.Errorf("same query must produce the same key: %s vs %s", first, second)
	}

	other := shared.BuildCacheKeyWithQuery("visit:gets", params, shared.FilterByID("visit-2", "id", "location_visits"))
	if first == other {
		t.Error("different filters must produce different keys")
	}
}

func TestFilterByID(t *testing.T) {
	group := shared.FilterByID("alert-1", "id", "safety_alerts")

	if len(group.Filters) != 1 {
		t.Fatalf("expected a single filter, got %d", len(group.Filters))
	}

	filter, ok := group.Filters[0].(dto.Filter)
	if !ok {
		t.Fatal("expected a dto.Filter entry")
	}

	if filter.Field != "id" || filter.Value != "alert-1" || filter.Table != "safety_alerts" {
		t.Errorf("unexpected filter: %+v", filter)
	}
}
