// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package charset

import (
	"bytes"
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

// Canonical candidate names.
const (
	UTF8    = "utf-8"
	UTF8SIG = "utf-8-sig"
	GBK     = "gbk"
	GB2312  = "gb2312"
	GB18030 = "gb18030"
	UTF16   = "utf-16"
	UTF16LE = "utf-16le"
	UTF16BE = "utf-16be"
	Big5    = "big5"
	ASCII   = "ascii"
	Latin1  = "latin1"
	CP1252  = "cp1252"
)

const (
	bomUTF8  = "\ufeff"
	maxASCII = 0x7F
)

// Fallbacks is the fixed candidate order tried after any confident guess.
var Fallbacks = []string{
	UTF8, UTF8SIG, GBK, GB2312, GB18030,
	UTF16, UTF16LE, UTF16BE, Big5, ASCII, Latin1, CP1252,
}

var errInvalidSequence = errors.New("invalid byte sequence")

// decodeFunc strictly decodes a whole buffer.
type decodeFunc func(data []byte) (string, error)

var codecs = map[string]decodeFunc{
	UTF8:    decodeUTF8,
	UTF8SIG: decodeUTF8,
	GBK:     strict(simplifiedchinese.GBK),
	GB2312:  decodeGB2312,
	GB18030: strict(simplifiedchinese.GB18030),
	UTF16:   strict(unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)),
	UTF16LE: strict(unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)),
	UTF16BE: strict(unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)),
	Big5:    strict(traditionalchinese.Big5),
	ASCII:   decodeASCII,
	Latin1:  strict(charmap.ISO8859_1),
	CP1252:  strict(charmap.Windows1252),
}

// aliases maps normalized guesser labels onto candidate names.
var aliases = map[string]string{
	"utf8":         UTF8,
	"utf-8":        UTF8,
	"utf-8-sig":    UTF8SIG,
	"gbk":          GBK,
	"cp936":        GBK,
	"gb2312":       GB2312,
	"euc-cn":       GB2312,
	"gb18030":      GB18030,
	"gb-18030":     GB18030,
	"utf-16":       UTF16,
	"utf-16le":     UTF16LE,
	"utf-16be":     UTF16BE,
	"big5":         Big5,
	"big-5":        Big5,
	"ascii":        ASCII,
	"us-ascii":     ASCII,
	"latin1":       Latin1,
	"latin-1":      Latin1,
	"iso-8859-1":   Latin1,
	"cp1252":       CP1252,
	"windows-1252": CP1252,
}

// resolve turns a guesser label into a candidate name and decoder. Labels
// outside the fixed table are looked up in the WHATWG encoding index.
func resolve(label string) (string, decodeFunc, bool) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(label)), "_", "-")
	if normalized == "" {
		return "", nil, false
	}

	if name, ok := aliases[normalized]; ok {
		return name, codecs[name], true
	}

	enc, err := htmlindex.Get(normalized)
	if err != nil {
		return normalized, nil, false
	}

	name, err := htmlindex.Name(enc)
	if err != nil {
		name = normalized
	}

	return name, strict(enc), true
}

// strict wraps an x/text decoder. Those decoders substitute U+FFFD for bad
// input instead of failing, so output holding U+FFFD is accepted only when
// it encodes back to the exact input. GB18030 and UTF-16 can carry a real
// U+FFFD; no other source of one survives the round trip.
func strict(enc encoding.Encoding) decodeFunc {
	return func(data []byte) (string, error) {
		out, err := enc.NewDecoder().Bytes(data)
		if err != nil {
			return "", err
		}
		if !utf8.Valid(out) {
			return "", errInvalidSequence
		}
		if bytes.ContainsRune(out, utf8.RuneError) {
			back, err := enc.NewEncoder().Bytes(out)
			if err != nil || !bytes.Equal(back, data) {
				return "", errInvalidSequence
			}
		}
		return strings.TrimPrefix(string(out), bomUTF8), nil
	}
}

func decodeUTF8(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", errInvalidSequence
	}
	return strings.TrimPrefix(string(data), bomUTF8), nil
}

func decodeASCII(data []byte) (string, error) {
	for _, b := range data {
		if b > maxASCII {
			return "", errInvalidSequence
		}
	}
	return string(data), nil
}

// decodeGB2312 accepts only EUC-CN byte pairs (lead 0xA1-0xF7, trail
// 0xA1-0xFE) and decodes them through GBK, which is a superset.
func decodeGB2312(data []byte) (string, error) {
	for i := 0; i < len(data); i++ {
		b := data[i]
		if b <= maxASCII {
			continue
		}
		if b < 0xA1 || b > 0xF7 || i+1 >= len(data) {
			return "", errInvalidSequence
		}
		if trail := data[i+1]; trail < 0xA1 || trail > 0xFE {
			return "", errInvalidSequence
		}
		i++
	}
	return strict(simplifiedchinese.GBK)(data)
}
