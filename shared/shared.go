package shared

import (
	"context"
	"math"
	"reflect"
	"shareit/shared/cache"
	"shareit/shared/constant"
	"shareit/shared/dto"
	"shareit/shared/failure"
	"shareit/shared/timezone"
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

const cacheKeySeparator = ":"

func ConvertStringToBool(value string) *bool {
	if value == "" {
		return nil
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Error().Err(err).Msg("failed to convert string to bool")

		return nil
	}

	return &boolValue
}

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}

// TransformFields converts the non-zero db-tagged fields of a struct into an update map.
// Pointer fields are included whenever they are set, even to a zero value.
func TransformFields(data any) map[string]any {
	val := reflect.ValueOf(data)
	typ := reflect.TypeOf(data)

	updatedFields := make(map[string]any)

	for index := range val.NumField() {
		field := val.Field(index)
		if field.IsZero() {
			continue
		}

		fieldName := typ.Field(index).Tag.Get("db")
		if fieldName == "" || fieldName == "-" {
			continue
		}

		if field.Kind() == reflect.Pointer {
			updatedFields[fieldName] = field.Elem().Interface()

			continue
		}

		updatedFields[fieldName] = field.Interface()
	}

	if len(updatedFields) > 0 {
		updatedFields[constant.FieldModifiedAt] = timezone.Now()
	}

	return updatedFields
}

func FilterByID(id any, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// FilterByIDs matches any of ids; an empty slice matches nothing.
func FilterByIDs(ids []int64, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    ids,
				Operator: dto.FilterOperatorIn,
				Table:    table,
			},
		},
	}
}

// UniqueIDs returns the distinct ids in ascending order.
func UniqueIDs(ids []int64) []int64 {
	unique := slices.Clone(ids)
	slices.Sort(unique)

	return slices.Compact(unique)
}

func BuildCacheKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), cacheKeySeparator)
}

// BuildCacheKeyWithQuery keys a list response by its paging and sorting.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams) string {
	return BuildCacheKey(prefix,
		strconv.Itoa(params.Page),
		strconv.Itoa(params.Limit),
		params.SortBy,
		params.SortDir,
	)
}

// InvalidateCaches removes every key under prefix, logging instead of failing.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, prefix+cacheKeySeparator+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}

// ParseID reads a positive numeric id from a path parameter.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, failure.InvalidIDParam
	}

	return id, nil
}
