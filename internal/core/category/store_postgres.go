// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/novol/internal/platform/database/schema"
	"github.com/taibuivan/novol/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) selectColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s",
		schema.CatalogCategory.ID, schema.CatalogCategory.Name,
		schema.CatalogCategory.Description, schema.CatalogCategory.CreatedAt)
}

func (repository *PostgresRepository) List(context context.Context) ([]*Category, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC`,
		repository.selectColumns(), schema.CatalogCategory.Table, schema.CatalogCategory.ID)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_categories")
	}
	defer rows.Close()

	categories := make([]*Category, 0)
	for rows.Next() {
		c := &Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_category")
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate_categories")
	}

	return categories, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id int) (*Category, error) {
	return repository.findOne(context, schema.CatalogCategory.ID, id, "find_category_by_id")
}

func (repository *PostgresRepository) FindByName(context context.Context, name string) (*Category, error) {
	return repository.findOne(context, schema.CatalogCategory.Name, name, "find_category_by_name")
}

func (repository *PostgresRepository) findOne(context context.Context, column string, value any, action string) (*Category, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		repository.selectColumns(), schema.CatalogCategory.Table, column)

	c := &Category{}
	err := repository.db.QueryRow(context, query, value).Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}

	return c, nil
}

func (repository *PostgresRepository) Exists(context context.Context, id int) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		schema.CatalogCategory.Table, schema.CatalogCategory.ID)

	var exists bool
	if err := repository.db.QueryRow(context, query, id).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "category_exists")
	}

	return exists, nil
}

func (repository *PostgresRepository) Create(context context.Context, category *Category) (bool, error) {
	// ON CONFLICT keeps concurrent "categories add" calls from failing on the unique name.
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES ($1, $2)
		ON CONFLICT (%s) DO NOTHING
		RETURNING %s, %s
	`,
		schema.CatalogCategory.Table, schema.CatalogCategory.Name, schema.CatalogCategory.Description,
		schema.CatalogCategory.Name,
		schema.CatalogCategory.ID, schema.CatalogCategory.CreatedAt,
	)

	err := repository.db.QueryRow(context, query, category.Name, category.Description).
		Scan(&category.ID, &category.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, dberr.Wrap(err, "insert_category")
	}

	return true, nil
}
