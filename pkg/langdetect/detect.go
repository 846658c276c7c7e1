// Package langdetect decides whether a file holds Python source. Files are
// recognized by extension, by well-known file name, or by an interpreter
// line naming Python, so that extensionless scripts are checked too.
package langdetect

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Normalized language names.
const (
	LangPython = "python"
	LangText   = "text"
)

// HeadSize is the number of leading bytes inspected for an interpreter line.
const HeadSize = 512

// Detect returns the normalized language of the file at path, given its
// leading bytes. It returns LangText when nothing identifies the file.
func Detect(path string, head []byte) string {
	// Strategy 1: the extension, when it is unambiguous.
	if lang, safe := enry.GetLanguageByExtension(path); safe {
		return normalize(lang)
	}

	// Strategy 2: well-known file names.
	if lang, safe := enry.GetLanguageByFilename(path); safe {
		return normalize(lang)
	}

	// Strategy 3: the interpreter line.
	if lang, safe := enry.GetLanguageByShebang(head); safe {
		return normalize(lang)
	}

	// Strategy 4: editor modelines such as "# vim: set ft=python".
	if lang, safe := enry.GetLanguageByModeline(head); safe {
		return normalize(lang)
	}

	return LangText
}

// IsPythonScript reports whether head starts with an interpreter line that
// runs Python.
func IsPythonScript(head []byte) bool {
	lang, _ := enry.GetLanguageByShebang(head)
	return normalize(lang) == LangPython
}

// IsPython reports whether the file at path is Python source.
func IsPython(path string, head []byte) bool {
	return Detect(path, head) == LangPython
}

// ReadHead returns up to HeadSize leading bytes of the file at path.
func ReadHead(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read head of %s: %w", path, err)
	}
	defer f.Close()

	buf := make([]byte, HeadSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read head of %s: %w", path, err)
	}

	return buf[:n], nil
}

// normalize converts go-enry language names to lowercase identifiers.
func normalize(lang string) string {
	switch lang {
	case "":
		return LangText
	case "Python", "Python console", "Python traceback":
		return LangPython
	default:
		return strings.ToLower(lang)
	}
}
