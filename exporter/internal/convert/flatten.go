package convert

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// visitFunc receives the ancestor path of an element and its trimmed text.
// path is reused by the walker and must not be retained.
type visitFunc func(path []string, text string)

// SyntaxError reports the byte offset at which a status document stopped
// being readable.
type SyntaxError struct {
	Offset int64
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("xml parse at offset %d: %v", e.Offset, e.Err)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// walk reads the document depth-first and calls visit for every element that
// carries direct, non-blank character data. Mixed content yields one call per
// text run.
//
// On malformed input walk returns a *SyntaxError; visit has already been
// called for everything that preceded the error.
func walk(r io.Reader, visit visitFunc) error {
	dec := xml.NewDecoder(r)
	// Documents declaring e.g. ISO-8859-1 in their prolog are decoded to UTF-8.
	dec.CharsetReader = charset.NewReaderLabel

	var stack []string
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return &SyntaxError{Offset: dec.InputOffset(), Err: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			stack = append(stack, t.Name.Local)
		case xml.EndElement:
			// Token guarantees end elements match their start element.
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			text := strings.TrimSpace(string(t))
			if text == "" {
				continue
			}
			visit(stack, text)
		}
	}
}
