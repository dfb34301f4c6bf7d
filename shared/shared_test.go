package shared_test

import (
	"reflect"
	"testing"
	"time"

	"roam/shared"
	"roam/shared/constant"
	"roam/shared/dto"
)

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *bool
	}{
		{
			name:     "empty string returns nil",
			input:    "",
			expected: nil,
		},
		{
			name:     "valid true string",
			input:    "true",
			expected: boolPtr(true),
		},
		{
			name:     "valid false string",
			input:    "false",
			expected: boolPtr(false),
		},
		{
			name:     "valid 1 string",
			input:    "1",
			expected: boolPtr(true),
		},
		{
			name:     "valid 0 string",
			input:    "0",
			expected: boolPtr(false),
		},
		{
			name:     "invalid string returns nil",
			input:    "maybe",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.ConvertStringToBool(tt.input)

			if tt.expected == nil {
				if result != nil {
					t.Errorf("expected nil, got %v", *result)
				}
			} else {
				if result == nil {
					t.Errorf("expected %v, got nil", *tt.expected)
				} else if *result != *tt.expected {
					t.Errorf("expected %v, got %v", *tt.expected, *result)
				}
			}
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{
			name:     "zero total returns 1",
			total:    0,
			limit:    10,
			expected: 1,
		},
		{
			name:     "zero limit returns 1",
			total:    100,
			limit:    0,
			expected: 1,
		},
		{
			name:     "negative limit returns 1",
			total:    100,
			limit:    -5,
			expected: 1,
		},
		{
			name:     "exact division",
			total:    30,
			limit:    10,
			expected: 3,
		},
		{
			name:     "division with remainder",
			total:    31,
			limit:    10,
			expected: 4,
		},
		{
			name:     "limit greater than total",
			total:    5,
			limit:    10,
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.CalculateTotalPage(tt.total, tt.limit)
			if result != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestTransformFields(t *testing.T) {
	type testStruct struct {
		Title    string `db:"title"`
		Location string `db:"location"`
		Price    string `db:"price"`
		NoDBTag  string
	}

	tests := []struct {
		name     string
		data     interface{}
		username string
		expected map[string]any
	}{
		{
			name: "struct with populated fields",
			data: testStruct{
				Title:    "Bali Honeymoon Escape",
				Location: "Kuta & Ubud",
				NoDBTag:  "ignored",
			},
			username: "admin",
			expected: map[string]any{
				"title":    "Bali Honeymoon Escape",
				"location": "Kuta & Ubud",
			},
		},
		{
			name:     "struct with all zero values",
			data:     testStruct{},
			username: "admin",
			expected: map[string]any{},
		},
		{
			name: "struct with partial fields",
			data: testStruct{
				Price: "₹85,000",
			},
			username: "editor",
			expected: map[string]any{
				"price": "₹85,000",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.TransformFields(tt.data, tt.username)

			if result[constant.FieldModifiedBy] != tt.username {
				t.Errorf("expected modified_by to be %s, got %v", tt.username, result[constant.FieldModifiedBy])
			}

			if _, ok := result[constant.FieldModifiedAt].(time.Time); !ok {
				t.Error("expected modified_at to be a time.Time")
			}

			for key, expectedValue := range tt.expected {
				if actualValue, exists := result[key]; !exists {
					t.Errorf("expected field %s to exist", key)
				} else if !reflect.DeepEqual(actualValue, expectedValue) {
					t.Errorf("expected field %s to be %v, got %v", key, expectedValue, actualValue)
				}
			}

			for key := range result {
				if key == constant.FieldModifiedAt || key == constant.FieldModifiedBy {
					continue
				}
				if _, expected := tt.expected[key]; !expected {
					t.Errorf("unexpected field %s in result", key)
				}
			}
		})
	}
}

func TestTransformFieldsWithPointers(t *testing.T) {
	type testStruct struct {
		HotelRating *int    `db:"hotel_rating"`
		Title       *string `db:"title"`
	}

	rating := 0 // zero behind a pointer still counts as set
	title := "Singapore City Lights"

	result := shared.TransformFields(testStruct{
		HotelRating: &rating,
		Title:       &title,
	}, "admin")

	expectedFields := map[string]any{
		"hotel_rating": &rating,
		"title":        &title,
	}

	for key, expectedValue := range expectedFields {
		if actualValue, exists := result[key]; !exists {
			t.Errorf("expected field %s to exist", key)
		} else if !reflect.DeepEqual(actualValue, expectedValue) {
			t.Errorf("expected field %s to be %v, got %v", key, expectedValue, actualValue)
		}
	}
}

func TestFilterByID(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		fieldID  string
		table    string
		expected dto.FilterGroup
	}{
		{
			name:    "basic filter by id",
			id:      "550e8400-e29b-41d4-a716-446655440000",
			fieldID: "id",
			table:   "packages",
			expected: dto.FilterGroup{
				Filters: []any{
					dto.Filter{
						Field:    "id",
						Value:    "550e8400-e29b-41d4-a716-446655440000",
						Operator: dto.FilterOperatorEq,
						Table:    "packages",
					},
				},
			},
		},
		{
			name:    "filter with empty table",
			id:      "pkg-1",
			fieldID: "package_id",
			table:   "",
			expected: dto.FilterGroup{
				Filters: []any{
					dto.Filter{
						Field:    "package_id",
						Value:    "pkg-1",
						Operator: dto.FilterOperatorEq,
						Table:    "",
					},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.FilterByID(tt.id, tt.fieldID, tt.table)

			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("expected %+v, got %+v", tt.expected, result)
			}
		})
	}
}

func TestBuildCacheKey(t *testing.T) {
	key := shared.BuildCacheKey("package", "get", "pkg-1")
	if key != "package:get:pkg-1" {
		t.Errorf("expected package:get:pkg-1, got %s", key)
	}
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 2, Limit: 10, SortBy: "created_at", SortDir: "DESC"}
	filter := shared.FilterByID("bali", "destination", "packages")

	first := shared.BuildCacheKeyWithQuery("package:get_all", params, filter)
	second := shared.BuildCacheKeyWithQuery("package:get_all", params, filter)

	if first != second {
		t.Errorf("expected stable key, got %s and %s", first, second)
	}

	otherFilter := shared.FilterByID("vietnam", "destination", "packages")

	other := shared.BuildCacheKeyWithQuery("package:get_all", params, otherFilter)
	if other == first {
		t.Errorf("expected distinct keys for distinct filters, got %s twice", first)
	}
}

func boolPtr(b bool) *bool {
	return &b
}
