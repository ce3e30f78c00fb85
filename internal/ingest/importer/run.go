// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package importer

import (
	"fmt"
	"time"

	"github.com/taibuivan/novol/internal/platform/apperr"
	"github.com/taibuivan/novol/pkg/slice"
	"github.com/taibuivan/novol/pkg/uuidv7"
)

// # Failure Kinds

// Kind is the stage a file failed at.
type Kind string

const (
	KindEncoding  Kind = "encoding"
	KindContent   Kind = "content"
	KindDatabase  Kind = "database"
	KindDuplicate Kind = "duplicate"
	KindOther     Kind = "other"
)

// Kinds lists every failure kind in report order.
var Kinds = []Kind{KindEncoding, KindContent, KindDatabase, KindDuplicate, KindOther}

// reportKeys names the report bucket of each kind.
var reportKeys = map[Kind]string{
	KindEncoding:  "encoding_errors",
	KindContent:   "content_errors",
	KindDatabase:  "database_errors",
	KindDuplicate: "duplicate_files",
	KindOther:     "other_errors",
}

// ReportKey returns the bucket name used in failure reports.
func (k Kind) ReportKey() string {
	return reportKeys[k]
}

// ParseKind validates a kind given on the command line.
func ParseKind(s string) (Kind, error) {
	kind := Kind(s)
	if _, ok := reportKeys[kind]; !ok {
		return "", apperr.ValidationError(fmt.Sprintf("unknown failure kind %q", s))
	}
	return kind, nil
}

// kindOf classifies a pipeline error by its application error code.
// Anything without a known code is [KindOther].
func kindOf(err error) Kind {
	switch apperr.CodeOf(err) {
	case apperr.CodeEncoding:
		return KindEncoding
	case apperr.CodeContent:
		return KindContent
	case apperr.CodeDatabase:
		return KindDatabase
	case apperr.CodeDuplicate:
		return KindDuplicate
	default:
		return KindOther
	}
}

// # Records

// FailureRecord describes one file that did not produce a novel.
type FailureRecord struct {
	FilePath      string    `json:"file_path"`
	FileName      string    `json:"file_name"`
	Title         string    `json:"title"`
	Kind          Kind      `json:"category"`
	Error         string    `json:"error"`
	Encoding      string    `json:"encoding,omitempty"`
	FileSize      *int64    `json:"file_size,omitempty"`
	ContentLength *int      `json:"content_length,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// Outcome is the result of importing one file. Failure is nil on success.
type Outcome struct {
	Path     string
	Title    string
	NovelID  string
	Chapters int
	Encoding string
	Failure  *FailureRecord
}

// Succeeded reports whether the file was stored.
func (o Outcome) Succeeded() bool {
	return o.Failure == nil
}

// # Run

// Run is the state of one batch: a directory import, a single file import
// or a retry. It is owned by a single goroutine.
type Run struct {
	ID         string
	StartedAt  time.Time
	CategoryID int
	Succeeded  int
	Imported   []Outcome

	failures map[Kind][]FailureRecord
}

// NewRun starts an empty run for categoryID.
func NewRun(categoryID int) *Run {
	return &Run{
		ID:         uuidv7.New(),
		StartedAt:  time.Now().UTC(),
		CategoryID: categoryID,
		failures:   make(map[Kind][]FailureRecord, len(Kinds)),
	}
}

// Record adds the outcome of one file to the run.
func (run *Run) Record(outcome Outcome) {
	if outcome.Succeeded() {
		run.Succeeded++
		run.Imported = append(run.Imported, outcome)
		return
	}

	failure := *outcome.Failure
	run.failures[failure.Kind] = append(run.failures[failure.Kind], failure)
}

// Failures returns the records of one kind in the order they were added.
func (run *Run) Failures(kind Kind) []FailureRecord {
	return run.failures[kind]
}

// Failed is the total number of failed files.
func (run *Run) Failed() int {
	return slice.Reduce(Kinds, 0, func(total int, kind Kind) int {
		return total + len(run.failures[kind])
	})
}

// Total is the number of files processed so far.
func (run *Run) Total() int {
	return run.Succeeded + run.Failed()
}

// HasFailures reports whether any file failed.
func (run *Run) HasFailures() bool {
	return run.Failed() > 0
}

// Counts returns the number of failures per kind, including zero counts.
func (run *Run) Counts() map[Kind]int {
	counts := make(map[Kind]int, len(Kinds))
	for _, kind := range Kinds {
		counts[kind] = len(run.failures[kind])
	}
	return counts
}
