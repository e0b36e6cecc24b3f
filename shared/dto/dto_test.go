package dto_test

import (
	"net/http/httptest"
	"shareit/shared/constant"
	"shareit/shared/dto"
	"shareit/shared/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	modifiedAt := time.Date(2023, 1, 2, 12, 0, 0, 0, time.UTC)

	metadata := &dto.Metadata{}
	metadata.FromModel(model.Metadata{CreatedAt: createdAt, ModifiedAt: modifiedAt})

	parsedCreated, err := time.Parse(constant.DateFormat, metadata.CreatedAt)
	assert.NoError(t, err)
	assert.True(t, createdAt.Equal(parsedCreated))

	parsedModified, err := time.Parse(constant.DateFormat, metadata.ModifiedAt)
	assert.NoError(t, err)
	assert.True(t, modifiedAt.Equal(parsedModified))
}

func TestFilter_GetWhereClause(t *testing.T) {
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "eq with table",
			filter:    dto.Filter{Field: "item_id", Value: int64(7), Operator: dto.FilterOperatorEq, Table: "bookings"},
			wantWhere: "bookings.item_id = :item_id",
			wantArgs:  map[string]any{"item_id": int64(7)},
		},
		{
			name:      "less with arg name",
			filter:    dto.Filter{ArgName: "now", Field: "end_time", Value: now, Operator: dto.FilterOperatorLess},
			wantWhere: "end_time < :now",
			wantArgs:  map[string]any{"now": now},
		},
		{
			name:      "greater",
			filter:    dto.Filter{Field: "start_time", Value: now, Operator: dto.FilterOperatorGreater},
			wantWhere: "start_time > :start_time",
			wantArgs:  map[string]any{"start_time": now},
		},
		{
			name:      "in expands slice",
			filter:    dto.Filter{Field: "id", Value: []int64{3, 5}, Operator: dto.FilterOperatorIn},
			wantWhere: "id IN (:id_0, :id_1) ",
			wantArgs:  map[string]any{"id_0": int64(3), "id_1": int64(5)},
		},
		{
			name:      "in with empty slice matches nothing",
			filter:    dto.Filter{Field: "id", Value: []int64{}, Operator: dto.FilterOperatorIn},
			wantWhere: "1 = 0",
			wantArgs:  map[string]any{},
		},
		{
			name:      "like wraps value",
			filter:    dto.Filter{Field: "name", Value: "drill", Operator: dto.FilterOperatorLike},
			wantWhere: `LOWER(name) LIKE LOWER(:name) ESCAPE '\' `,
			wantArgs:  map[string]any{"name": "%drill%"},
		},
		{
			name:      "like escapes wildcards in value",
			filter:    dto.Filter{Field: "name", Value: `100%_off\`, Operator: dto.FilterOperatorLike},
			wantWhere: `LOWER(name) LIKE LOWER(:name) ESCAPE '\' `,
			wantArgs:  map[string]any{"name": `%100\%\_off\\%`},
		},
		{
			name:      "unknown operator",
			filter:    dto.Filter{Field: "name", Value: "x", Operator: "regex"},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "booker_id", Value: int64(2), Operator: dto.FilterOperatorEq},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{ArgName: "s1", Field: "status", Value: "WAITING", Operator: dto.FilterOperatorEq},
					dto.Filter{ArgName: "s2", Field: "status", Value: "APPROVED", Operator: dto.FilterOperatorEq},
				},
			},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(booker_id = :booker_id AND (status = :s1 OR status = :s2))", where)
	assert.Equal(t, map[string]any{"booker_id": int64(2), "s1": "WAITING", "s2": "APPROVED"}, args)

	empty := dto.FilterGroup{}
	where, args = empty.GetWhereClause()

	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name:     "all parameters",
			query:    "?page=2&limit=20&sort_by=name&sort_dir=asc",
			expected: dto.QueryParams{Page: 2, Limit: 20, SortBy: "name", SortDir: dto.SortDirAsc},
		},
		{
			name:           "defaults applied",
			query:          "",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "no defaults",
			query:    "",
			expected: dto.QueryParams{},
		},
		{
			name:           "invalid numbers fall back to defaults",
			query:          "?page=-1&limit=abc&sort_dir=sideways",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/v1/users"+tt.query, nil)

			params := dto.QueryParams{}
			params.FromRequest(req, tt.defaultRequest)

			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestQueryParams_Sanitize(t *testing.T) {
	params := dto.QueryParams{SortBy: "name; DROP TABLE users", SortDir: dto.SortDirDesc}
	params.Sanitize("name", "email")
	assert.Empty(t, params.SortBy)

	params = dto.QueryParams{SortBy: "email"}
	params.Sanitize("name", "email")
	assert.Equal(t, "email", params.SortBy)
	assert.Equal(t, dto.SortDirAsc, params.SortDir)
}
