// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/taibuivan/novol/internal/platform/validate"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) List(context context.Context) ([]*Category, error) {
	return service.repo.List(context)
}

func (service *Service) Get(context context.Context, id int) (*Category, error) {
	return service.repo.FindByID(context, id)
}

/*
Create returns the category named name, creating it if necessary.

Parameters:
  - context: context.Context
  - name: string (trimmed, 1..50 characters)
  - description: string

Returns:
  - *Category: the new or existing category
  - bool: true when a row was inserted
  - error: VALIDATION_ERROR or storage failures
*/
func (service *Service) Create(context context.Context, name, description string) (*Category, bool, error) {
	name = strings.TrimSpace(name)

	v := &validate.Validator{}
	v.Required("name", name).MaxLen("name", name, MaxNameLen)
	if err := v.Err(); err != nil {
		return nil, false, err
	}

	existing, err := service.repo.FindByName(context, name)
	if err == nil {
		service.logger.Info("category_exists", slog.Int("id", existing.ID), slog.String("name", name))
		return existing, false, nil
	}
	if !errors.Is(err, ErrCategoryNotFound) {
		return nil, false, err
	}

	category := &Category{Name: name, Description: strings.TrimSpace(description)}
	created, err := service.repo.Create(context, category)
	if err != nil {
		return nil, false, err
	}

	// Lost a race with another writer; return the winner's row.
	if !created {
		existing, err := service.repo.FindByName(context, name)
		return existing, false, err
	}

	service.logger.Info("category_created", slog.Int("id", category.ID), slog.String("name", name))
	return category, true, nil
}
