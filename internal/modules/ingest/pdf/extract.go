package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

var (
	// ErrUnreadable means the payload is not a PDF the parser understands.
	ErrUnreadable = errors.New("could not read PDF")
	// ErrNoText means the PDF parsed but carries no extractable text (scanned or image-only).
	ErrNoText = errors.New("no extractable text in PDF")
)

// ExtractText returns the text of every page joined by "\n". Pages without
// text contribute an empty string so page boundaries are preserved.
func ExtractText(data []byte) (text string, err error) {
	// The parser panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%w: %v", ErrUnreadable, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	numPages := r.NumPage()
	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, pageText)
	}

	text = strings.Join(pages, "\n")
	if strings.TrimSpace(text) == "" {
		return "", ErrNoText
	}
	return text, nil
}
