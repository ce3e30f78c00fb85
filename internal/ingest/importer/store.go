// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package importer

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/novol/internal/core/category"
	"github.com/taibuivan/novol/internal/core/novel"
	"github.com/taibuivan/novol/pkg/slice"
)

// # Chapter Store

// Store is everything the import pipeline needs from the catalogue.
type Store interface {

	/*
		CategoryExists reports whether the target category is present.

		Parameters:
		  - context: context.Context
		  - id: int

		Returns:
		  - bool: true when present
		  - error: Storage failures
	*/
	CategoryExists(context context.Context, id int) (bool, error)

	/*
		ListCategories returns all categories ordered by ID.

		Parameters:
		  - context: context.Context

		Returns:
		  - []category.Category: the categories
		  - error: Storage failures
	*/
	ListCategories(context context.Context) ([]category.Category, error)

	/*
		NovelTitleExists reports whether a novel with exactly this title exists.

		Parameters:
		  - context: context.Context
		  - title: string

		Returns:
		  - bool: true when a novel has this title
		  - error: DATABASE on storage failures
	*/
	NovelTitleExists(context context.Context, title string) (bool, error)

	/*
		CreateNovel persists a novel and its chapters in one transaction.

		Parameters:
		  - context: context.Context
		  - novel: *novel.Novel
		  - chapters: []novel.Chapter

		Returns:
		  - error: DUPLICATE on a title race, DATABASE otherwise
	*/
	CreateNovel(context context.Context, novel *novel.Novel, chapters []novel.Chapter) error
}

// catalogStore adapts the catalogue repositories to [Store].
type catalogStore struct {
	categories category.Repository
	novels     novel.Repository
}

// NewStore composes a [Store] from the catalogue repositories.
func NewStore(categories category.Repository, novels novel.Repository) Store {
	return &catalogStore{categories: categories, novels: novels}
}

// NewPostgresStore returns a [Store] backed by pool.
func NewPostgresStore(pool *pgxpool.Pool) Store {
	return NewStore(category.NewPostgresRepository(pool), novel.NewPostgresRepository(pool))
}

func (store *catalogStore) CategoryExists(context context.Context, id int) (bool, error) {
	return store.categories.Exists(context, id)
}

func (store *catalogStore) ListCategories(context context.Context) ([]category.Category, error) {
	categories, err := store.categories.List(context)
	if err != nil {
		return nil, err
	}

	return slice.Map(categories, func(c *category.Category) category.Category { return *c }), nil
}

func (store *catalogStore) NovelTitleExists(context context.Context, title string) (bool, error) {
	return store.novels.TitleExists(context, title)
}

func (store *catalogStore) CreateNovel(context context.Context, novel *novel.Novel, chapters []novel.Chapter) error {
	return store.novels.Create(context, novel, chapters)
}
