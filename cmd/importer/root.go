// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/taibuivan/novol/internal/ingest/importer"
	"github.com/taibuivan/novol/internal/ingest/segment"
	"github.com/taibuivan/novol/internal/ingest/title"
	"github.com/taibuivan/novol/internal/platform/constants"
	"github.com/taibuivan/novol/internal/platform/validate"
)

var (
	maxFiles       int
	author         string
	listCategories bool
	retryReport    string
	retryType      string
	mode           string
	titleRules     string
	guessAuthor    bool
	reportDir      string
	runMigrations  bool
	outputFormat   string
)

var rootCmd = &cobra.Command{
	Use:   constants.AppName + " [path] [category_id]",
	Short: "Import plain-text novels into the catalogue",
	Long: `Imports .txt novel files into the PostgreSQL catalogue.

Each file is decoded (the character set is detected), checked, split into
chapters and stored as one novel. Files that fail are listed in a JSON
report that can be replayed with --retry.

Examples:
  novol-import ./novels 1                       # Import a directory into category 1
  novol-import ./novels/斗破苍穹.txt 1            # Import a single file
  novol-import ./novels 1 --max-files 10         # Import the first 10 files
  novol-import --list-categories                # Show available categories
  novol-import --retry report.json 1            # Retry everything except duplicates
  novol-import --retry report.json 1 --retry-type encoding`,
	Version:      constants.AppVersion,
	Args:         cobra.MaximumNArgs(2),
	SilenceUsage: true,
	RunE:         runRoot,
}

func init() {
	rootCmd.Flags().IntVar(&maxFiles, "max-files", 0, "import at most this many files from a directory (0: all)")
	rootCmd.Flags().StringVar(&author, "author", "", "author stored on imported novels (default: $DEFAULT_AUTHOR)")
	rootCmd.Flags().BoolVar(&listCategories, "list-categories", false, "list categories and exit")
	rootCmd.Flags().StringVar(&retryReport, "retry", "", "retry the files of a failure report")
	rootCmd.Flags().StringVar(&retryType, "retry-type", "", "retry only one failure kind: encoding, content, database, duplicate or other")
	rootCmd.Flags().StringVar(&mode, "mode", string(segment.ModeLines), "chapter segmentation: lines or paragraphs")
	rootCmd.Flags().StringVar(&titleRules, "title-rules", "basic", "file name cleanup rules: basic or extended")
	rootCmd.Flags().BoolVar(&guessAuthor, "guess-author", false, `split "author-title" file names into title and author`)
	rootCmd.Flags().StringVar(&reportDir, "report-dir", "", "directory for failure reports (default: $REPORT_DIR)")
	rootCmd.Flags().BoolVar(&runMigrations, "migrate", false, "apply database migrations before importing")

	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", string(OutputFormatTable), "output format for listings: table, json or yaml")

	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(versionCmd)
}

// importArgs are the validated positional arguments and flags.
type importArgs struct {
	path       string
	categoryID int
	filter     importer.Kind
	options    importer.Options
}

// parseImportArgs checks arguments and flags before anything is opened.
// With --retry the only positional argument is the category.
func parseImportArgs(args []string) (*importArgs, error) {
	v := &validate.Validator{}

	want := 2
	if retryReport != "" {
		want = 1
		v.Exists("retry", retryReport)
	}
	v.Custom("args", len(args) != want, fmt.Sprintf("Expected %d positional arguments, got %d", want, len(args)))

	parsed := &importArgs{}
	if len(args) == want {
		if retryReport == "" {
			parsed.path = args[0]
			v.Exists("path", parsed.path)
		}

		id, err := strconv.Atoi(args[want-1])
		if err != nil {
			v.Custom("category_id", true, "Must be an integer")
		} else {
			v.Range("category_id", id, 1, 1<<31-1)
		}
		parsed.categoryID = id
	}

	v.NonNegative("max_files", maxFiles).
		OneOf("retry_type", retryType, kindNames()...).
		Custom("retry_type", retryType != "" && retryReport == "", "Requires --retry").
		OneOf("mode", mode, string(segment.ModeLines), string(segment.ModeParagraphs)).
		OneOf("title_rules", titleRules, "basic", "extended")

	if err := v.Err(); err != nil {
		return nil, err
	}

	parsed.filter = importer.Kind(retryType)
	parsed.options = importer.Options{
		Author:      author,
		GuessAuthor: guessAuthor,
		Mode:        segment.Mode(mode),
		Rules:       title.Basic,
	}
	if titleRules == "extended" {
		parsed.options.Rules = title.Extended
	}

	return parsed, nil
}

func kindNames() []string {
	names := make([]string, len(importer.Kinds))
	for i, kind := range importer.Kinds {
		names[i] = string(kind)
	}
	return names
}

func runRoot(cmd *cobra.Command, args []string) error {
	if err := validateOutputFormat(); err != nil {
		return err
	}

	if listCategories {
		return runListCategories(cmd)
	}

	parsed, err := parseImportArgs(args)
	if err != nil {
		return err
	}

	a, err := bootstrap(cmd.Context(), runMigrations)
	if err != nil {
		return err
	}
	defer a.Close()

	if parsed.options.Author == "" {
		parsed.options.Author = a.cfg.DefaultAuthor
	}
	if reportDir == "" {
		reportDir = a.cfg.ReportDir
	}

	imp := a.newImporter(parsed.options)

	var (
		run      *importer.Run
		batchErr error
	)
	if retryReport != "" {
		report, err := importer.LoadReport(retryReport)
		if err != nil {
			return err
		}
		run, batchErr = imp.Retry(cmd.Context(), report, parsed.categoryID, parsed.filter)
	} else {
		run, batchErr = imp.ImportPath(cmd.Context(), parsed.path, parsed.categoryID, importer.BatchOptions{MaxFiles: maxFiles})
	}
	if run == nil {
		return batchErr
	}

	// An interrupted batch still reports what it did.
	return printSummary(cmd.OutOrStdout(), run, reportDir, batchErr)
}
