package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"shareit/infras/otel"
	"shareit/infras/postgres"
	"shareit/shared/constant"
	"shareit/shared/dto"
	"shareit/shared/logger"
	"slices"
	"strings"
)

var (
	errRequiredFilter = errors.New("required filter")
	errNoReturnedID   = errors.New("insert returned no id")
)

type execer interface {
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
}

// Repository is a generic table gateway over sqlx named queries.
// Columns come from `db` tags; fields tagged `insert:"-"` are generated by the database.
type Repository[T any] struct {
	db            *postgres.Connection
	otel          otel.Otel
	table         string
	entitas       string
	primaryColumn string
	columns       []string
	InsertColumns []string
}

func NewRepository[T any](entitasName, tableName, primaryColumn string, dbConnection *postgres.Connection, otl otel.Otel) Repository[T] {
	var zero T

	columns, insertColumns := getColumns(reflect.TypeOf(zero))

	return Repository[T]{
		db:            dbConnection,
		otel:          otl,
		table:         tableName,
		entitas:       entitasName,
		primaryColumn: primaryColumn,
		columns:       columns,
		InsertColumns: insertColumns,
	}
}

func (repo *Repository[T]) scopeName(method string) string {
	return fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, repo.entitas, method)
}

// Insert stores model and returns the generated primary key.
func (repo *Repository[T]) Insert(ctx context.Context, model T) (int64, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.scopeName("Insert"))
	defer scope.End()

	placeholders := make([]string, 0, len(repo.InsertColumns))
	for _, col := range repo.InsertColumns {
		placeholders = append(placeholders, ":"+col)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		repo.table, strings.Join(repo.InsertColumns, ", "), strings.Join(placeholders, ", "), repo.primaryColumn)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	rows, err := repo.db.Write.NamedQueryContext(ctx, query, model)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to insert data (%s): %w", repo.entitas, err)
	}
	defer rows.Close()

	if !rows.Next() {
		err = rows.Err()
		if err == nil {
			err = errNoReturnedID
		}

		scope.TraceError(err)

		return 0, fmt.Errorf("failed to insert data (%s): %w", repo.entitas, err)
	}

	var id int64
	if err = rows.Scan(&id); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to read inserted id (%s): %w", repo.entitas, err)
	}

	return id, nil
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.scopeName("Exist"))
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return false, errRequiredFilter
	}

	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s %s)", repo.table, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	exist := false

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to check exist data (%s): %w", repo.entitas, err)
	}
	defer prepare.Close()

	if err = prepare.GetContext(ctx, &exist, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to check exist data (%s): %w", repo.entitas, err)
	}

	return exist, nil
}

// Get returns the first row matching filter, or the zero value when nothing matches.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	models, err := repo.GetAll(ctx, dto.QueryParams{Limit: 1}, filter, columns...)

	var model T
	if err != nil || len(models) == 0 {
		return model, err
	}

	return models[0], nil
}

func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.scopeName("GetAll"))
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)

	var ordering, pagination string

	page := params.Page
	limit := params.Limit

	if page > 0 && limit > 0 {
		args["limit"] = limit
		args["offset"] = (page - 1) * limit

		pagination = "LIMIT :limit OFFSET :offset"
	} else if limit > 0 && params.Offset > 0 {
		args["limit"] = limit
		args["offset"] = params.Offset

		pagination = "LIMIT :limit OFFSET :offset"
	} else if limit > 0 {
		args["limit"] = limit

		pagination = "LIMIT :limit"
	}

	if params.SortBy != "" && params.SortDir != "" {
		ordering = fmt.Sprintf("ORDER BY %s %s, %s %s", params.SortBy, params.SortDir, repo.primaryColumn, params.SortDir)
	}

	query := fmt.Sprintf("SELECT %s FROM %s %s %s %s", repo.getSelectQuery(columns...), repo.table, where, ordering, pagination)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	models := []T{}

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return models, fmt.Errorf("failed to prepare statement (%s): %w", repo.entitas, err)
	}
	defer prepare.Close()

	if err = prepare.SelectContext(ctx, &models, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return models, fmt.Errorf("failed to get all data (%s): %w", repo.entitas, err)
	}

	return models, nil
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.scopeName("Count"))
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)

	query := fmt.Sprintf("SELECT COUNT(%s) FROM %s %s", repo.primaryColumn, repo.table, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var count int

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to prepare statement (%s): %w", repo.entitas, err)
	}
	defer prepare.Close()

	if err = prepare.GetContext(ctx, &count, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to count data (%s): %w", repo.entitas, err)
	}

	return count, nil
}

func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.scopeName("Delete"))
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return errRequiredFilter
	}

	query := fmt.Sprintf("DELETE FROM %s %s", repo.table, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := repo.exec(ctx, repo.db.Write, query, args); err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to delete data (%s): %w", repo.entitas, err)
	}

	return nil
}

// Update applies mod to every row matching filter and returns the number of rows changed.
// Filter argument names must not collide with the updated column names.
func (repo *Repository[T]) Update(ctx context.Context, mod map[string]any, filter dto.FilterGroup) (int64, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.scopeName("Update"))
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return 0, errRequiredFilter
	}

	updateField := make([]string, 0, len(mod))
	for _, col := range slices.Sorted(maps.Keys(mod)) {
		updateField = append(updateField, fmt.Sprintf("%s = :%s", col, col))
	}

	query := fmt.Sprintf("UPDATE %s SET %s %s", repo.table, strings.Join(updateField, ", "), where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)
	maps.Copy(args, mod)

	affected, err := repo.exec(ctx, repo.db.Write, query, args)
	if err != nil {
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to update data (%s): %w", repo.entitas, err)
	}

	return affected, nil
}

func (repo *Repository[T]) exec(ctx context.Context, exec execer, query string, args map[string]any) (int64, error) {
	result, err := exec.NamedExecContext(ctx, query, args)
	if err != nil {
		logger.ErrorWithStack(err)

		return 0, err //nolint:wrapcheck
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err //nolint:wrapcheck
	}

	return affected, nil
}

func (repo *Repository[T]) getSelectQuery(columnsParam ...string) string {
	columns := make([]string, 0, len(repo.columns))

	for _, name := range repo.columns {
		if len(columnsParam) > 0 && !slices.Contains(columnsParam, name) {
			continue
		}

		columns = append(columns, fmt.Sprintf("%s.%s", repo.table, name))
	}

	return strings.Join(columns, ", ")
}

func (repo *Repository[T]) BuildWhereClause(ctx context.Context, filter dto.FilterGroup) (string, map[string]any) {
	_, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.scopeName("BuildWhereClause"))
	defer scope.End()

	where, args := filter.GetWhereClause()

	if where == "" {
		return where, map[string]any{}
	}

	return fmt.Sprintf(" WHERE %s ", where), args
}

func getColumns(reflectType reflect.Type) (columns []string, insertColumns []string) {
	for i := range reflectType.NumField() {
		field := reflectType.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			col, insertCol := getColumns(field.Type)
			columns = append(columns, col...)
			insertColumns = append(insertColumns, insertCol...)

			continue
		}

		dbTag := field.Tag.Get("db")
		if dbTag == "" || dbTag == "-" {
			continue
		}

		columns = append(columns, dbTag)

		if field.Tag.Get("insert") != "-" {
			insertColumns = append(insertColumns, dbTag)
		}
	}

	return columns, insertColumns
}
