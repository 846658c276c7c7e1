package fsutil

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
)

// Encoding names reported by DecodeSource.
const (
	EncodingUTF8   = "utf-8"
	EncodingLatin1 = "latin-1"
)

// ErrUnknownEncoding is returned by LookupEncoding for names it cannot resolve.
var ErrUnknownEncoding = errors.New("unknown encoding")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// codingCookie matches a source encoding declaration such as
// "# -*- coding: latin-1 -*-".
var codingCookie = regexp.MustCompile(`^[ \t\f]*#.*?coding[:=][ \t]*([-\w.]+)`)

// blankOrComment matches lines that may precede a coding declaration.
var blankOrComment = regexp.MustCompile(`^[ \t\f]*(?:[#\r\n]|$)`)

// Source is a decoded source file.
type Source struct {
	// Text is the decoded content with newlines normalized to "\n".
	Text string

	// Encoding is the encoding the content was decoded from.
	Encoding string

	// Fallback is true when the declared or default encoding failed
	// and the content was decoded as Latin-1 instead.
	Fallback bool
}

// DecodeSource decodes raw file content into text.
//
// The encoding is taken from a coding declaration on the first or second
// line, defaulting to UTF-8. A leading UTF-8 byte-order mark is stripped.
// When the content cannot be decoded with that encoding it is decoded as
// Latin-1, which accepts every byte sequence.
func DecodeSource(content []byte) Source {
	name := declaredEncoding(content)

	if name == EncodingUTF8 {
		body := bytes.TrimPrefix(content, utf8BOM)
		if utf8.Valid(body) {
			return Source{Text: NormalizeNewlines(string(body)), Encoding: EncodingUTF8}
		}
	} else if enc, err := LookupEncoding(name); err == nil {
		if decoded, derr := enc.NewDecoder().Bytes(content); derr == nil {
			return Source{Text: NormalizeNewlines(string(decoded)), Encoding: name}
		}
	}

	return Source{Text: decodeLatin1(content), Encoding: EncodingLatin1, Fallback: true}
}

func decodeLatin1(content []byte) string {
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(content)
	if err != nil {
		// ISO 8859-1 maps every byte; this only happens on allocation failure.
		return NormalizeNewlines(string(content))
	}
	return NormalizeNewlines(string(decoded))
}

// declaredEncoding returns the normalized encoding named by a coding
// declaration, or utf-8 when there is none.
func declaredEncoding(content []byte) string {
	first, rest, _ := bytes.Cut(content, []byte("\n"))
	if m := codingCookie.FindSubmatch(first); m != nil {
		return normalizeEncodingName(string(m[1]))
	}
	if !blankOrComment.Match(first) {
		return EncodingUTF8
	}
	second, _, _ := bytes.Cut(rest, []byte("\n"))
	if m := codingCookie.FindSubmatch(second); m != nil {
		return normalizeEncodingName(string(m[1]))
	}
	return EncodingUTF8
}

func normalizeEncodingName(name string) string {
	name = strings.ToLower(strings.ReplaceAll(name, "_", "-"))
	switch {
	case name == "utf-8" || name == "utf8" || strings.HasPrefix(name, "utf-8-"):
		return EncodingUTF8
	case name == "latin-1" || name == "latin1" || name == "iso-8859-1" ||
		name == "iso-latin-1" || name == "l1" ||
		strings.HasPrefix(name, "latin-1-") || strings.HasPrefix(name, "iso-8859-1-"):
		return EncodingLatin1
	}
	return name
}

// LookupEncoding resolves a normalized encoding name.
func LookupEncoding(name string) (encoding.Encoding, error) {
	switch name {
	case EncodingUTF8:
		return encoding.Nop, nil
	case EncodingLatin1:
		return charmap.ISO8859_1, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEncoding, name)
	}
	return enc, nil
}

// NormalizeNewlines translates "\r\n" and lone "\r" line endings to "\n".
func NormalizeNewlines(text string) string {
	if !strings.Contains(text, "\r") {
		return text
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// SplitLines splits text into lines, keeping each line's terminating
// newline. The final line has no terminator when the text does not end
// with one. Empty text yields no lines.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := make([]string, 0, strings.Count(text, "\n")+1)
	for line := range strings.SplitAfterSeq(text, "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
