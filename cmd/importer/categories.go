// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taibuivan/novol/internal/core/category"
)

var categoryDescription string

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Category management commands",
}

var categoriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateOutputFormat(); err != nil {
			return err
		}
		return runListCategories(cmd)
	},
}

var categoriesAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Create a category unless one with the same name exists",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateOutputFormat(); err != nil {
			return err
		}

		a, err := bootstrap(cmd.Context(), runMigrations)
		if err != nil {
			return err
		}
		defer a.Close()

		service := category.NewService(category.NewPostgresRepository(a.pool), a.logger)
		created, inserted, err := service.Create(cmd.Context(), args[0], categoryDescription)
		if err != nil {
			return err
		}

		if OutputFormat(outputFormat) != OutputFormatTable {
			return OutputTo(cmd.OutOrStdout(), OutputFormat(outputFormat), created)
		}

		verb := "Created"
		if !inserted {
			verb = "Exists"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d %s\n", verb, created.ID, created.Name)
		return nil
	},
}

func init() {
	categoriesAddCmd.Flags().StringVar(&categoryDescription, "description", "", "category description")
	categoriesCmd.PersistentFlags().BoolVar(&runMigrations, "migrate", false, "apply database migrations first")

	categoriesCmd.AddCommand(categoriesListCmd)
	categoriesCmd.AddCommand(categoriesAddCmd)
}

// runListCategories prints every category in the selected output format.
func runListCategories(cmd *cobra.Command) error {
	a, err := bootstrap(cmd.Context(), runMigrations)
	if err != nil {
		return err
	}
	defer a.Close()

	categories, err := category.NewService(category.NewPostgresRepository(a.pool), a.logger).List(cmd.Context())
	if err != nil {
		return err
	}

	return outputCategories(cmd.OutOrStdout(), OutputFormat(outputFormat), categories)
}
