// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import "context"

// # Category Data Access

// Repository defines the data access contract for categories.
type Repository interface {

	/*
		List returns every category ordered by ID.

		Parameters:
		  - context: context.Context

		Returns:
		  - []*Category: all categories
		  - error: Storage failures
	*/
	List(context context.Context) ([]*Category, error)

	/*
		FindByID returns the category with the given ID.

		Parameters:
		  - context: context.Context
		  - id: int

		Returns:
		  - *Category: the category
		  - error: ErrCategoryNotFound if missing
	*/
	FindByID(context context.Context, id int) (*Category, error)

	/*
		FindByName returns the category with the exact given name.

		Parameters:
		  - context: context.Context
		  - name: string

		Returns:
		  - *Category: the category
		  - error: ErrCategoryNotFound if missing
	*/
	FindByName(context context.Context, name string) (*Category, error)

	/*
		Exists reports whether a category with the given ID exists.

		Parameters:
		  - context: context.Context
		  - id: int

		Returns:
		  - bool: true when present
		  - error: Storage failures
	*/
	Exists(context context.Context, id int) (bool, error)

	/*
		Create inserts a category unless the name is taken.

		Parameters:
		  - context: context.Context
		  - category: *Category (ID and CreatedAt are filled in on success)

		Returns:
		  - bool: false when a category with the same name already existed
		  - error: Storage failures
	*/
	Create(context context.Context, category *Category) (bool, error)
}
