// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package charset decodes text files of unknown character encoding.

A statistical guesser inspects a prefix of the file. A confident guess is
tried first, followed by a fixed list of encodings common in Chinese novel
archives. Each candidate must decode the whole buffer without invalid
sequences and must then pass the content quality check in [Assess]; the
first candidate that does both wins.

Usage:

	detector := charset.NewDetector()
	result, err := detector.Detect(ctx, raw)
	if errors.Is(err, charset.ErrNoUsableEncoding) {
	    // classify as an encoding failure
	}
*/
package charset

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/saintfish/chardet"

	"github.com/taibuivan/novol/internal/platform/apperr"
	"github.com/taibuivan/novol/internal/platform/constants"
	"github.com/taibuivan/novol/internal/platform/ctxutil"
)

// GuessThreshold is the confidence a guess needs to be tried first.
const GuessThreshold = 0.7

// ErrNoUsableEncoding is returned when every candidate failed.
var ErrNoUsableEncoding = apperr.Encoding("no candidate encoding produced usable text")

// # Attempts

// Outcome classifies a single candidate decode.
type Outcome int

const (
	// Accepted means the candidate decoded cleanly and passed quality checks.
	Accepted Outcome = iota
	// Invalid means the bytes are not a valid sequence in the candidate encoding.
	Invalid
	// Rejected means the candidate decoded but the text failed quality checks.
	Rejected
	// Unsupported means the guesser named an encoding with no available decoder.
	Unsupported
)

func (o Outcome) String() string {
	switch o {
	case Accepted:
		return "accepted"
	case Invalid:
		return "invalid"
	case Rejected:
		return "rejected"
	case Unsupported:
		return "unsupported"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Attempt records what happened to one candidate.
type Attempt struct {
	Encoding string
	Outcome  Outcome
	Reason   string
}

// Result is a successful detection.
type Result struct {
	Text     string
	Encoding string
	// Confidence is the guesser's confidence in [0, 1], or 0 without a guess.
	Confidence float64
	Attempts   []Attempt
}

// DetectionError carries the full attempt log of a failed detection.
// It unwraps to [ErrNoUsableEncoding].
type DetectionError struct {
	Attempts []Attempt
}

func (e *DetectionError) Error() string {
	tried := make([]string, 0, len(e.Attempts))
	for _, attempt := range e.Attempts {
		tried = append(tried, attempt.Encoding+"="+attempt.Outcome.String())
	}
	return fmt.Sprintf("%s (tried %s)", ErrNoUsableEncoding.Message, strings.Join(tried, ", "))
}

func (e *DetectionError) Unwrap() error { return ErrNoUsableEncoding }

// # Guessing

// Guesser names the most likely encoding of a sample.
type Guesser interface {
	Guess(sample []byte) (label string, confidence float64, ok bool)
}

// GuesserFunc adapts a plain function to [Guesser].
type GuesserFunc func(sample []byte) (string, float64, bool)

// Guess implements [Guesser].
func (f GuesserFunc) Guess(sample []byte) (string, float64, bool) { return f(sample) }

// chardetGuesser is the default [Guesser], backed by ICU-style byte statistics.
type chardetGuesser struct {
	detector *chardet.Detector
}

func (g chardetGuesser) Guess(sample []byte) (string, float64, bool) {
	best, err := g.detector.DetectBest(sample)
	if err != nil || best == nil {
		return "", 0, false
	}
	return best.Charset, float64(best.Confidence) / 100, true
}

// # Detector

// Detector runs the candidate sweep. It is stateless and safe for concurrent use.
type Detector struct {
	guesser   Guesser
	sampleLen int
}

// Option configures a [Detector].
type Option func(*Detector)

// WithGuesser replaces the statistical guesser.
func WithGuesser(g Guesser) Option {
	return func(d *Detector) { d.guesser = g }
}

// NewDetector returns a detector using chardet over the first
// [constants.SampleBytes] bytes.
func NewDetector(opts ...Option) *Detector {
	detector := &Detector{
		guesser:   chardetGuesser{detector: chardet.NewTextDetector()},
		sampleLen: constants.SampleBytes,
	}
	for _, opt := range opts {
		opt(detector)
	}
	return detector
}

/*
Detect decodes data with the first acceptable candidate.

Parameters:
  - ctx: context.Context (carries the logger)
  - data: []byte (whole file contents)

Returns:
  - *Result: decoded text, candidate name and guess confidence
  - error: *DetectionError (unwraps to ErrNoUsableEncoding) if nothing was acceptable
*/
func (d *Detector) Detect(ctx context.Context, data []byte) (*Result, error) {
	logger := ctxutil.GetLogger(ctx)

	sample := data
	if len(sample) > d.sampleLen {
		sample = sample[:d.sampleLen]
	}

	var (
		confidence float64
		candidates []string
		guessed    = map[string]decodeFunc{}
		attempts   []Attempt
	)

	if label, conf, ok := d.guesser.Guess(sample); ok {
		confidence = conf
		logger.Debug("charset_guessed", slog.String("label", label), slog.Float64("confidence", conf))

		if conf > GuessThreshold {
			if name, decode, supported := resolve(label); supported {
				candidates = append(candidates, name)
				guessed[name] = decode
			} else {
				attempts = append(attempts, Attempt{Encoding: name, Outcome: Unsupported, Reason: "no decoder for " + label})
			}
		}
	}

	for _, name := range Fallbacks {
		if _, dup := guessed[name]; !dup {
			candidates = append(candidates, name)
		}
	}

	for _, name := range candidates {
		decode, ok := guessed[name]
		if !ok {
			decode = codecs[name]
		}

		attempt := Attempt{Encoding: name}
		text, err := decode(data)

		if err != nil {
			attempt.Outcome, attempt.Reason = Invalid, err.Error()
			attempts = append(attempts, attempt)
			logger.Debug("charset_candidate_invalid", slog.String("encoding", name), slog.Any("error", err))
			continue
		}

		verdict := Assess(text)
		attempt.Reason = verdict.Reason

		if !verdict.Accepted {
			attempt.Outcome = Rejected
			attempts = append(attempts, attempt)
			logger.Debug("charset_candidate_rejected",
				slog.String("encoding", name),
				slog.String("reason", verdict.Reason),
				slog.Float64("printable_ratio", verdict.PrintableRatio),
				slog.Float64("replacement_ratio", verdict.ReplacementRatio),
				slog.Float64("cjk_ratio", verdict.CJKRatio),
			)
			continue
		}

		attempt.Outcome = Accepted
		attempts = append(attempts, attempt)

		logger.Debug("charset_detected",
			slog.String("encoding", name),
			slog.Float64("confidence", confidence),
			slog.Float64("cjk_ratio", verdict.CJKRatio),
		)

		return &Result{Text: text, Encoding: name, Confidence: confidence, Attempts: attempts}, nil
	}

	return nil, &DetectionError{Attempts: attempts}
}
