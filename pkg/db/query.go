package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Select runs a query and scans every row into T by column name.
func Select[T any](ctx context.Context, c Conn, sql string, args ...any) ([]T, error) {
	rows, err := c.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByNameLax[T])
}

// One runs a query expected to return at most one row. It returns nil
// without error when there is no row.
func One[T any](ctx context.Context, c Conn, sql string, args ...any) (*T, error) {
	rows, err := c.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	res, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByNameLax[T])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return res, err
}

// Scalar runs a query returning a single value of T.
func Scalar[T any](ctx context.Context, c Conn, sql string, args ...any) (T, error) {
	var zero T
	rows, err := c.Query(ctx, sql, args...)
	if err != nil {
		return zero, err
	}
	return pgx.CollectOneRow(rows, pgx.RowTo[T])
}

// ScalarOrNil runs a query returning a single nullable value; it returns
// nil both for an absent row and for a NULL value.
func ScalarOrNil[T any](ctx context.Context, c Conn, sql string, args ...any) (*T, error) {
	rows, err := c.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	res, err := pgx.CollectOneRow(rows, pgx.RowTo[*T])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return res, err
}

// PageResult is one page of a paged query.
type PageResult[T any] struct {
	Items []T
	Total int64
}

// Page runs a paged query. Pages are 1-based; page values below 1 are
// treated as the first page.
func Page[T any](
	ctx context.Context,
	c Conn,
	page, pageSize int,
	sql string,
	args ...any,
) (PageResult[T], error) {
	var res PageResult[T]
	if page < 1 {
		page = 1
	}

	total, err := Scalar[int64](
		ctx, c,
		fmt.Sprintf("SELECT COUNT(*) FROM (%s) AS paged", sql),
		args...,
	)
	if err != nil {
		return res, err
	}

	offset := (page - 1) * pageSize
	items, err := Select[T](
		ctx, c,
		fmt.Sprintf("%s LIMIT %d OFFSET %d", sql, pageSize, offset),
		args...,
	)
	if err != nil {
		return res, err
	}

	res.Items = items
	res.Total = total
	return res, nil
}
