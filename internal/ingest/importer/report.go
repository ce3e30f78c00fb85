// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/taibuivan/novol/internal/platform/apperr"
)

// reportTimeLayout stamps report file names.
const reportTimeLayout = "20060102_150405"

// Report is the persisted form of a run's failures.
type Report struct {
	GeneratedAt time.Time                  `json:"generated_at"`
	RunID       string                     `json:"run_id"`
	CategoryID  int                        `json:"category_id"`
	TotalFailed int                        `json:"total_failed"`
	Counts      map[Kind]int               `json:"counts"`
	Failures    map[string][]FailureRecord `json:"failures"`
}

// NewReport snapshots the failures of run. Every bucket is present, empty
// ones as empty lists.
func NewReport(run *Run, generatedAt time.Time) *Report {
	report := &Report{
		GeneratedAt: generatedAt,
		RunID:       run.ID,
		CategoryID:  run.CategoryID,
		TotalFailed: run.Failed(),
		Counts:      run.Counts(),
		Failures:    make(map[string][]FailureRecord, len(Kinds)),
	}

	for _, kind := range Kinds {
		records := append([]FailureRecord{}, run.Failures(kind)...)
		report.Failures[kind.ReportKey()] = records
	}

	return report
}

// Entries selects the records to retry. An empty filter selects every
// bucket except duplicates, in report order.
func (report *Report) Entries(filter Kind) ([]FailureRecord, error) {
	if filter != "" {
		if _, err := ParseKind(string(filter)); err != nil {
			return nil, err
		}
		return report.Failures[filter.ReportKey()], nil
	}

	var entries []FailureRecord
	for _, kind := range Kinds {
		if kind == KindDuplicate {
			continue
		}
		entries = append(entries, report.Failures[kind.ReportKey()]...)
	}
	return entries, nil
}

// ReportFileName returns the file name of a report generated at t.
func ReportFileName(t time.Time) string {
	return "import_failed_files_" + t.Format(reportTimeLayout) + ".json"
}

/*
SaveReport writes the failures of run into dir.

Parameters:
  - dir: string
  - run: *Run
  - now: time.Time (report timestamp and file name)

Returns:
  - string: the written path, or "" when the run has no failures
  - error: encoding or filesystem failures
*/
func SaveReport(dir string, run *Run, now time.Time) (string, error) {
	if !run.HasFailures() {
		return "", nil
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(NewReport(run, now)); err != nil {
		return "", fmt.Errorf("importer: encode report: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("importer: create report dir: %w", err)
	}

	path := filepath.Join(dir, ReportFileName(now))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("importer: write report: %w", err)
	}

	return path, nil
}

// legacyReport is the layout written by the earlier import scripts.
type legacyReport struct {
	Failures map[string][]FailureRecord `json:"失败文件详情"`
}

// LoadReport reads a report written by [SaveReport]. Reports of the earlier
// import scripts, whose buckets may hold bare path strings, are accepted too.
func LoadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperr.NotFound("Report").Wrap(err)
	}

	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, apperr.ValidationError("malformed report " + path).Wrap(err)
	}

	if report.Failures == nil {
		var legacy legacyReport
		if err := json.Unmarshal(data, &legacy); err != nil {
			return nil, apperr.ValidationError("malformed report " + path).Wrap(err)
		}
		report.Failures = legacy.Failures
	}

	return &report, nil
}

// UnmarshalJSON accepts a full record, a record with the older "filename"
// key, or a bare file path.
func (record *FailureRecord) UnmarshalJSON(data []byte) error {
	var path string
	if err := json.Unmarshal(data, &path); err == nil {
		*record = FailureRecord{FilePath: path, FileName: filepath.Base(path)}
		return nil
	}

	type plain FailureRecord
	var decoded struct {
		plain
		LegacyFileName string `json:"filename"`
		Timestamp      string `json:"timestamp"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	*record = FailureRecord(decoded.plain)
	if record.FileName == "" {
		record.FileName = decoded.LegacyFileName
	}
	if decoded.Timestamp != "" {
		stamp, err := parseTimestamp(decoded.Timestamp)
		if err != nil {
			return err
		}
		record.Timestamp = stamp
	}
	return nil
}

// parseTimestamp accepts RFC 3339 and the zone-less ISO form of the
// earlier scripts, which is read as local time.
func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02T15:04:05.999999999", s, time.Local)
}
