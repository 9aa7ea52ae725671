package shared_test

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hotelops/shared"
	"hotelops/shared/cache/mocks"
	"hotelops/shared/constant"
	"hotelops/shared/dto"
)

func boolPtr(b bool) *bool {
	return &b
}

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *bool
	}{
		{name: "empty string returns nil", input: "", expected: nil},
		{name: "true", input: "true", expected: boolPtr(true)},
		{name: "false", input: "false", expected: boolPtr(false)},
		{name: "numeric true", input: "1", expected: boolPtr(true)},
		{name: "upper case false", input: "FALSE", expected: boolPtr(false)},
		{name: "invalid string returns nil", input: "maybe", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.ConvertStringToBool(tt.input)

			if tt.expected == nil {
				if result != nil {
					t.Errorf("expected nil, got %v", *result)
				}

				return
			}

			if result == nil || *result != *tt.expected {
				t.Errorf("expected %v, got %v", *tt.expected, result)
			}
		})
	}
}

func TestConvertStringToInt(t *testing.T) {
	got, err := shared.ConvertStringToInt(" 4 ")
	assert.NoError(t, err)
	assert.Equal(t, 4, got)

	_, err = shared.ConvertStringToInt("four")
	assert.Error(t, err)
}

func TestConvertStringToFloat(t *testing.T) {
	got, err := shared.ConvertStringToFloat("120.50")
	assert.NoError(t, err)
	assert.InDelta(t, 120.5, got, 0.0001)

	_, err = shared.ConvertStringToFloat("")
	assert.Error(t, err)
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "zero total returns 1", total: 0, limit: 10, expected: 1},
		{name: "zero limit returns 1", total: 100, limit: 0, expected: 1},
		{name: "negative limit returns 1", total: 100, limit: -5, expected: 1},
		{name: "exact division", total: 100, limit: 10, expected: 10},
		{name: "division with remainder", total: 101, limit: 10, expected: 11},
		{name: "limit greater than total", total: 5, limit: 10, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := shared.CalculateTotalPage(tt.total, tt.limit); result != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestTransformFields(t *testing.T) {
	type roomPatch struct {
		Name       string   `db:"name"`
		BasePrice  *float64 `db:"base_price"`
		Capacity   int      `db:"capacity"`
		Ignored    string   `db:"-"`
		NoDBTag    string
		EmptyField string `db:"description"`
	}

	price := 0.0
	result := shared.TransformFields(roomPatch{
		Name:      "Deluxe",
		BasePrice: &price,
		Ignored:   "skip",
		NoDBTag:   "skip",
	}, "user-1")

	expected := map[string]any{
		"name":       "Deluxe",
		"base_price": &price,
	}

	for key, value := range expected {
		if !reflect.DeepEqual(result[key], value) {
			t.Errorf("expected field %s to be %v, got %v", key, value, result[key])
		}
	}

	if _, ok := result[constant.FieldModifiedAt].(time.Time); !ok {
		t.Error("expected modified_at to be a time.Time")
	}

	if result[constant.FieldModifiedBy] != "user-1" {
		t.Errorf("expected modified_by to be user-1, got %v", result[constant.FieldModifiedBy])
	}

	for key := range result {
		if key == constant.FieldModifiedAt || key == constant.FieldModifiedBy {
			continue
		}

		if _, ok := expected[key]; !ok {
			t.Errorf("unexpected field %s in result", key)
		}
	}
}

func TestFilterByID(t *testing.T) {
	result := shared.FilterByID("room-1", "id", "rooms")

	expected := dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "id", Value: "room-1", Operator: dto.FilterOperatorEq, Table: "rooms"},
		},
	}

	if !reflect.DeepEqual(result, expected) {
		t.Errorf("expected %+v, got %+v", expected, result)
	}
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "room:get:abc", shared.BuildCacheKey("room:get", "abc"))
	assert.Equal(t, "profile:get", shared.BuildCacheKey("profile:get"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}
	filterA := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters:  []any{dto.Filter{Field: "status", Value: "confirmed", Operator: dto.FilterOperatorEq}},
	}
	filterB := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters:  []any{dto.Filter{Field: "status", Value: "pending", Operator: dto.FilterOperatorEq}},
	}

	keyA := shared.BuildCacheKeyWithQuery("booking:gets", params, filterA)

	assert.True(t, strings.HasPrefix(keyA, "booking:gets:"))
	assert.Equal(t, keyA, shared.BuildCacheKeyWithQuery("booking:gets", params, filterA))
	assert.NotEqual(t, keyA, shared.BuildCacheKeyWithQuery("booking:gets", params, filterB))
	assert.NotEqual(t, keyA, shared.BuildCacheKeyWithQuery("booking:gets", dto.QueryParams{Page: 2, Limit: 10}, filterA))
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCache := mocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Clear(gomock.Any(), "room:gets*").Return(nil)
	shared.InvalidateCaches(context.Background(), mockCache, "room:gets")

	mockCache.EXPECT().Clear(gomock.Any(), "room:count*").Return(errors.New("redis down"))
	shared.InvalidateCaches(context.Background(), mockCache, "room:count")
}
