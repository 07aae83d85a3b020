package shared_test

import (
	"context"
	"errors"
	"icpac/shared"
	"icpac/shared/cache/mocks"
	"icpac/shared/constant"
	"icpac/shared/dto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *bool
	}{
		{name: "empty string returns nil", input: "", expected: nil},
		{name: "valid true string", input: "true", expected: boolPtr(true)},
		{name: "valid false string", input: "false", expected: boolPtr(false)},
		{name: "valid 1 string", input: "1", expected: boolPtr(true)},
		{name: "valid F string", input: "F", expected: boolPtr(false)},
		{name: "invalid string returns nil", input: "invalid", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.ConvertStringToBool(tt.input))
		})
	}
}

func TestConvertStringToInt(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  int
		expectErr bool
	}{
		{name: "plain number", input: "25", expected: 25},
		{name: "surrounding spaces", input: " 8 ", expected: 8},
		{name: "negative number", input: "-3", expected: -3},
		{name: "not a number", input: "ten", expectErr: true},
		{name: "empty", input: "", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := shared.ConvertStringToInt(tt.input)
			if tt.expectErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestConvertStringToInt64(t *testing.T) {
	got, err := shared.ConvertStringToInt64("9000000000")
	require.NoError(t, err)
	assert.Equal(t, int64(9000000000), got)

	_, err = shared.ConvertStringToInt64("1.5")
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
			assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestTransformFields(t *testing.T) {
	type updateRoom struct {
		Name       string `db:"name"`
		Capacity   int    `db:"capacity"`
		Location   string `db:"location"`
		NoDBTag    string
		IgnoredTag string `db:"-"`
	}

	tests := []struct {
		name     string
		data     any
		username string
		expected map[string]any
	}{
		{
			name: "populated fields are mapped by db tag",
			data: updateRoom{
				Name:       "Situation Room",
				Capacity:   8,
				NoDBTag:    "ignored",
				IgnoredTag: "ignored",
			},
			username: "admin@icpac.net",
			expected: map[string]any{"name": "Situation Room", "capacity": 8},
		},
		{
			name:     "zero struct only carries metadata",
			data:     updateRoom{},
			username: "admin@icpac.net",
			expected: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.TransformFields(tt.data, tt.username)

			assert.Equal(t, tt.username, result[constant.FieldModifiedBy])
			assert.IsType(t, time.Time{}, result[constant.FieldModifiedAt])

			delete(result, constant.FieldModifiedAt)
			delete(result, constant.FieldModifiedBy)

			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestFilterByID(t *testing.T) {
	result := shared.FilterByID(int64(42), "id", "rooms")

	expected := dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "id", Value: int64(42), Operator: dto.FilterOperatorEq, Table: "rooms"},
		},
	}

	assert.Equal(t, expected, result)

	where, args := result.GetWhereClause()
	assert.Equal(t, "(rooms.id = :id)", where)
	assert.Equal(t, int64(42), args["id"])
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "room:get", shared.BuildCacheKey("room:get"))
	assert.Equal(t, "room:get:42", shared.BuildCacheKey("room:get", int64(42)))
	assert.Equal(t, "availability:day:3:2030-06-03", shared.BuildCacheKey("availability:day", 3, "2030-06-03"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}
	active := dto.FilterGroup{Filters: []any{dto.Filter{Field: "active", Value: true, Operator: dto.FilterOperatorEq}}}
	inactive := dto.FilterGroup{Filters: []any{dto.Filter{Field: "active", Value: false, Operator: dto.FilterOperatorEq}}}

	first := shared.BuildCacheKeyWithQuery("room:all", params, active)
	second := shared.BuildCacheKeyWithQuery("room:all", params, active)
	other := shared.BuildCacheKeyWithQuery("room:all", params, inactive)

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	assert.Contains(t, first, "room:all:1:10")
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	redisCache := mocks.NewMockRedisCache(ctrl)

	redisCache.EXPECT().Clear(gomock.Any(), "booking:all*").Return(nil)
	redisCache.EXPECT().Clear(gomock.Any(), "booking:count*").Return(errors.New("redis down"))

	shared.InvalidateCaches(context.Background(), redisCache, "booking:all")
	shared.InvalidateCaches(context.Background(), redisCache, "booking:count")
}

func boolPtr(b bool) *bool {
	return &b
}
