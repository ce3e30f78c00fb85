// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package charset_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"

	"github.com/taibuivan/novol/internal/ingest/charset"
	"github.com/taibuivan/novol/internal/platform/apperr"
)

const (
	simplified  = "第一章 风起\n\n少年站在山巅，望着远方的云海，心中涌起万丈豪情。他知道，属于自己的时代终于来了。"
	traditional = "第一章 風起\n\n少年站在山巔，望著遠方的雲海，心中湧起萬丈豪情。他知道，屬於自己的時代終於來了。"
	latinProse  = "Café society gathered at the brasserie; crème brûlée was served to everyone présent."
)

// noGuess disables the statistical guesser so the fallback order is exercised.
var noGuess = charset.WithGuesser(charset.GuesserFunc(func([]byte) (string, float64, bool) {
	return "", 0, false
}))

func guess(label string, confidence float64) charset.Option {
	return charset.WithGuesser(charset.GuesserFunc(func([]byte) (string, float64, bool) {
		return label, confidence, true
	}))
}

func encode(t *testing.T, enc encoding.Encoding, text string) []byte {
	t.Helper()
	out, err := enc.NewEncoder().Bytes([]byte(text))
	require.NoError(t, err)
	return out
}

/*
TestDetect_Fallbacks decodes each input with the guesser disabled, so the
winning candidate is decided purely by the fixed order.
*/
func TestDetect_Fallbacks(t *testing.T) {
	tests := []struct {
		name     string
		data     func(t *testing.T) []byte
		want     string
		encoding string
	}{
		{
			name:     "utf8",
			data:     func(*testing.T) []byte { return []byte(simplified) },
			want:     simplified,
			encoding: charset.UTF8,
		},
		{
			name:     "utf8_bom_is_stripped",
			data:     func(*testing.T) []byte { return append([]byte{0xEF, 0xBB, 0xBF}, simplified...) },
			want:     simplified,
			encoding: charset.UTF8,
		},
		{
			name:     "gbk",
			data:     func(t *testing.T) []byte { return encode(t, simplifiedchinese.GBK, simplified) },
			want:     simplified,
			encoding: charset.GBK,
		},
		{
			name: "gb18030_encoded_replacement_char",
			data: func(t *testing.T) []byte {
				return encode(t, simplifiedchinese.GB18030, strings.Repeat(simplified, 3)+"\ufffd")
			},
			want:     strings.Repeat(simplified, 3) + "\ufffd",
			encoding: charset.GB18030,
		},
		{
			name: "utf16_with_bom",
			data: func(t *testing.T) []byte {
				return encode(t, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), simplified)
			},
			want:     simplified,
			encoding: charset.UTF16,
		},
	}

	detector := charset.NewDetector(noGuess)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := detector.Detect(context.Background(), tt.data(t))
			require.NoError(t, err)

			assert.Equal(t, tt.encoding, result.Encoding)
			assert.Equal(t, tt.want, result.Text)
			assert.Zero(t, result.Confidence)

			last := result.Attempts[len(result.Attempts)-1]
			assert.Equal(t, charset.Accepted, last.Outcome)
			assert.Equal(t, tt.encoding, last.Encoding)
		})
	}
}

/*
TestDetect_ConfidentGuessFirst verifies a guess above the threshold is tried
before the fixed list and reported with its confidence.
*/
func TestDetect_ConfidentGuessFirst(t *testing.T) {
	tests := []struct {
		name     string
		option   charset.Option
		data     func(t *testing.T) []byte
		want     string
		encoding string
	}{
		{
			name:     "big5",
			option:   guess("Big5", 0.99),
			data:     func(t *testing.T) []byte { return encode(t, traditionalchinese.Big5, traditional) },
			want:     traditional,
			encoding: charset.Big5,
		},
		{
			name:     "gb18030_label_normalized",
			option:   guess("GB-18030", 0.85),
			data:     func(t *testing.T) []byte { return encode(t, simplifiedchinese.GB18030, simplified) },
			want:     simplified,
			encoding: charset.GB18030,
		},
		{
			name:     "windows1252",
			option:   guess("windows-1252", 0.8),
			data:     func(t *testing.T) []byte { return encode(t, charmap.Windows1252, latinProse) },
			want:     latinProse,
			encoding: charset.CP1252,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := charset.NewDetector(tt.option).Detect(context.Background(), tt.data(t))
			require.NoError(t, err)

			assert.Equal(t, tt.encoding, result.Encoding)
			assert.Equal(t, tt.want, result.Text)
			assert.Greater(t, result.Confidence, charset.GuessThreshold)
			require.Len(t, result.Attempts, 1)
		})
	}
}

func TestDetect_WeakGuessIgnored(t *testing.T) {
	result, err := charset.NewDetector(guess("Big5", 0.7)).Detect(context.Background(), []byte(simplified))
	require.NoError(t, err)

	assert.Equal(t, charset.UTF8, result.Encoding)
	assert.InDelta(t, 0.7, result.Confidence, 1e-9)
	assert.Equal(t, charset.UTF8, result.Attempts[0].Encoding)
}

/*
TestDetect_GuessOutsideTable resolves through the WHATWG label index.
*/
func TestDetect_GuessOutsideTable(t *testing.T) {
	data := encode(t, charmap.Windows1251, "Война и мир. Том первый, часть первая, глава первая.")

	result, err := charset.NewDetector(guess("windows-1251", 0.9)).Detect(context.Background(), data)
	require.NoError(t, err)

	assert.Equal(t, "windows-1251", result.Encoding)
	assert.Equal(t, "Война и мир. Том первый, часть первая, глава первая.", result.Text)
}

func TestDetect_UnsupportedGuessIsRecorded(t *testing.T) {
	result, err := charset.NewDetector(guess("x-klingon", 0.95)).Detect(context.Background(), []byte(simplified))
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(result.Attempts), 2)
	assert.Equal(t, charset.Unsupported, result.Attempts[0].Outcome)
	assert.Equal(t, charset.UTF8, result.Encoding)
}

/*
TestDetect_Undetectable feeds bytes that every candidate either rejects as
invalid or decodes into control characters.
*/
func TestDetect_Undetectable(t *testing.T) {
	data := make([]byte, 64)

	result, err := charset.NewDetector(noGuess).Detect(context.Background(), data)
	require.Error(t, err)
	assert.Nil(t, result)

	assert.ErrorIs(t, err, charset.ErrNoUsableEncoding)
	assert.Equal(t, apperr.CodeEncoding, apperr.CodeOf(err))

	var detection *charset.DetectionError
	require.True(t, errors.As(err, &detection))
	assert.Len(t, detection.Attempts, len(charset.Fallbacks))
	for _, attempt := range detection.Attempts {
		assert.NotEqual(t, charset.Accepted, attempt.Outcome, attempt.Encoding)
	}
	assert.Contains(t, err.Error(), "utf-8=rejected")
}

/*
TestDetect_NeverReturnsRejectedText exercises the real guesser on a mix of
inputs: whatever comes back must pass the quality check.
*/
func TestDetect_NeverReturnsRejectedText(t *testing.T) {
	inputs := map[string][]byte{
		"utf8":   []byte(simplified),
		"gbk":    encode(t, simplifiedchinese.GBK, simplified),
		"big5":   encode(t, traditionalchinese.Big5, traditional),
		"latin":  encode(t, charmap.Windows1252, latinProse),
		"binary": []byte(strings.Repeat("\x00\x01\x02\x03", 64)),
		"short":  []byte("太短"),
	}

	detector := charset.NewDetector()

	for name, data := range inputs {
		t.Run(name, func(t *testing.T) {
			result, err := detector.Detect(context.Background(), data)
			if err != nil {
				assert.ErrorIs(t, err, charset.ErrNoUsableEncoding)
				return
			}
			assert.True(t, charset.Acceptable(result.Text))
			assert.GreaterOrEqual(t, result.Confidence, 0.0)
			assert.LessOrEqual(t, result.Confidence, 1.0)
		})
	}
}

func TestDetect_UTF8FromRealGuesser(t *testing.T) {
	result, err := charset.NewDetector().Detect(context.Background(), []byte(strings.Repeat(simplified, 4)))
	require.NoError(t, err)
	assert.Equal(t, charset.UTF8, result.Encoding)
}
