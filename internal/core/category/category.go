// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package category manages the classification buckets novels are filed under.
//
// Categories are seeded by migration and otherwise only created through the
// explicit "categories add" helper; the import pipeline never creates them.
package category

import (
	"time"

	"github.com/taibuivan/novol/internal/platform/apperr"
)

// Name limits, matching the catalog.category column.
const (
	MaxNameLen = 50
)

// ErrCategoryNotFound is returned when a category ID does not exist.
var ErrCategoryNotFound = apperr.NotFound("Category")

// Category is a classification bucket.
type Category struct {
	ID          int       `json:"id"          yaml:"id"`
	Name        string    `json:"name"        yaml:"name"`
	Description string    `json:"description" yaml:"description"`
	CreatedAt   time.Time `json:"-"           yaml:"-"`
}
