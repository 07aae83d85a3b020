package dto_test

import (
	"icpac/shared/constant"
	"icpac/shared/dto"
	"icpac/shared/model"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	modifiedAt := time.Date(2023, 1, 2, 12, 0, 0, 0, time.UTC)

	metadata := &dto.Metadata{}
	metadata.FromModel(model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
		CreatedBy:  "creator",
		ModifiedBy: "modifier",
	})

	assert.NotEmpty(t, metadata.CreatedAt)
	assert.NotEmpty(t, metadata.ModifiedAt)

	parsed, err := time.Parse(constant.DateFormat, metadata.CreatedAt)
	assert.NoError(t, err)
	assert.True(t, parsed.Equal(createdAt))
	assert.Equal(t, "creator", metadata.CreatedBy)
	assert.Equal(t, "modifier", metadata.ModifiedBy)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		queryParams    map[string]string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name:        "with all valid parameters",
			queryParams: map[string]string{"page": "2", "limit": "20", "sort_by": "name", "sort_dir": "asc"},
			expected:    dto.QueryParams{Page: 2, Limit: 20, SortBy: "name", SortDir: "ASC"},
		},
		{
			name:           "defaults applied",
			queryParams:    map[string]string{},
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:        "no defaults",
			queryParams: map[string]string{},
			expected:    dto.QueryParams{},
		},
		{
			name:           "invalid numbers fall back",
			queryParams:    map[string]string{"page": "-1", "limit": "x"},
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:        "unknown sort direction ignored",
			queryParams: map[string]string{"sort_dir": "sideways"},
			expected:    dto.QueryParams{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := url.Values{}
			for key, value := range tt.queryParams {
				query.Set(key, value)
			}

			req := httptest.NewRequest("GET", "/v1/bookings?"+query.Encode(), nil)

			params := dto.QueryParams{}
			params.FromRequest(req, tt.defaultRequest)

			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name         string
		filter       dto.Filter
		expectedSQL  string
		expectedArgs map[string]any
	}{
		{
			name:         "eq with table",
			filter:       dto.Filter{Field: "room_id", Value: int64(1), Operator: dto.FilterOperatorEq, Table: "room_bookings"},
			expectedSQL:  "room_bookings.room_id = :room_id",
			expectedArgs: map[string]any{"room_id": int64(1)},
		},
		{
			name:         "less eq with arg name",
			filter:       dto.Filter{ArgName: "range_end", Field: "start_date", Value: "2030-06-05", Operator: dto.FilterOperatorLessEq},
			expectedSQL:  "start_date <= :range_end",
			expectedArgs: map[string]any{"range_end": "2030-06-05"},
		},
		{
			name:         "in slice",
			filter:       dto.Filter{Field: "approval_status", Value: []string{"pending", "approved"}, Operator: dto.FilterOperatorIn},
			expectedSQL:  "approval_status IN (:approval_status_0, :approval_status_1) ",
			expectedArgs: map[string]any{"approval_status_0": "pending", "approval_status_1": "approved"},
		},
		{
			name:         "like",
			filter:       dto.Filter{Field: "name", Value: "board", Operator: dto.FilterOperatorLike},
			expectedSQL:  "LOWER(name) LIKE LOWER(:name) ",
			expectedArgs: map[string]any{"name": "%board%"},
		},
		{
			name:         "is null",
			filter:       dto.Filter{Field: "cancelled_at", Operator: dto.FilterIsNull},
			expectedSQL:  "cancelled_at IS NULL",
			expectedArgs: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.expectedSQL, sql)
			assert.Equal(t, tt.expectedArgs, args)
		})
	}
}

func TestFilterGroup_Nested(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "room_id", Value: int64(4), Operator: dto.FilterOperatorEq},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{Field: "name", Value: "lab", Operator: dto.FilterOperatorLike},
					dto.Filter{Field: "location", Value: "lab", ArgName: "loc", Operator: dto.FilterOperatorLike},
				},
			},
		},
	}

	sql, args := group.GetWhereClause()

	assert.Equal(t, "(room_id = :room_id AND (LOWER(name) LIKE LOWER(:name)  OR LOWER(location) LIKE LOWER(:loc) ))", sql)
	assert.Len(t, args, 3)
}
