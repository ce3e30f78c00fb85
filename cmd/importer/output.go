// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/taibuivan/novol/internal/core/category"
	"github.com/taibuivan/novol/internal/platform/validate"
)

// OutputFormat defines the output format for listings.
type OutputFormat string

const (
	OutputFormatTable OutputFormat = "table"
	OutputFormatJSON  OutputFormat = "json"
	OutputFormatYAML  OutputFormat = "yaml"
)

func validateOutputFormat() error {
	v := &validate.Validator{}
	v.OneOf("output", outputFormat, string(OutputFormatTable), string(OutputFormatJSON), string(OutputFormatYAML))
	return v.Err()
}

// OutputTo writes data to the given writer in the specified format.
func OutputTo(w io.Writer, format OutputFormat, data any) error {
	switch format {
	case OutputFormatJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case OutputFormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(data)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// outputCategories prints categories as a table or in a structured format.
func outputCategories(w io.Writer, format OutputFormat, categories []*category.Category) error {
	if format != OutputFormatTable {
		return OutputTo(w, format, categories)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDESCRIPTION")
	for _, c := range categories {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", c.ID, c.Name, c.Description)
	}
	return tw.Flush()
}
