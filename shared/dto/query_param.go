package dto

import (
	"net/http"
	"shareit/shared/constant"
	"slices"
	"strconv"
	"strings"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

// QueryParams pages by Page and Limit. Offset is a raw row offset, used only when Page is unset.
type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty"`
	Offset  int    `json:"offset"   validate:"omitempty"`
	Limit   int    `json:"limit"    validate:"omitempty"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// FromRequest populates QueryParams from the HTTP request.
// With defaultRequest set, missing Page and Limit fall back to the defaults.
func (q *QueryParams) FromRequest(r *http.Request, defaultRequest bool) {
	queryParams := r.URL.Query()

	if page := queryParams.Get(constant.RequestParamPage); page != "" {
		if pageInt, err := strconv.Atoi(page); err == nil && pageInt > 0 {
			q.Page = pageInt
		}
	}

	if limit := queryParams.Get(constant.RequestParamLimit); limit != "" {
		if limitInt, err := strconv.Atoi(limit); err == nil && limitInt > 0 {
			q.Limit = limitInt
		}
	}

	if sortBy := queryParams.Get(constant.RequestParamSortBy); sortBy != "" {
		q.SortBy = sortBy
	}

	if sortDir := strings.ToUpper(queryParams.Get(constant.RequestParamSortDir)); sortDir == SortDirAsc || sortDir == SortDirDesc {
		q.SortDir = sortDir
	}

	if defaultRequest {
		if q.Page == 0 {
			q.Page = constant.DefaultValuePage
		}

		if q.Limit == 0 {
			q.Limit = constant.DefaultValueLimit
		}
	}
}

// Sanitize drops a sort column that is not whitelisted; ORDER BY is interpolated into SQL.
func (q *QueryParams) Sanitize(allowedSortBy ...string) {
	if q.SortBy != "" && !slices.Contains(allowedSortBy, q.SortBy) {
		q.SortBy = ""
	}

	if q.SortBy != "" && q.SortDir == "" {
		q.SortDir = SortDirAsc
	}
}
