package format

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrUnknownFormat is returned for output format names other than json, edn and text.
var ErrUnknownFormat = errors.New("unknown format")

// Validate reports whether format names a supported output format.
func Validate(format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json", "edn", "text":
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// Envelope is the top-level shape of every CLI payload.
type Envelope struct {
	Data any            `json:"data"`
	Meta map[string]any `json:"meta,omitempty"`
}

// TextRenderer is implemented by payloads that have a plain, line-oriented form.
type TextRenderer interface {
	RenderText(w io.Writer) error
}

// Write writes v in the requested format.
//
// Supported formats:
// - json (default)
// - edn
// - text (only for payloads implementing TextRenderer; others fall back to pretty json)
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "edn":
		return WriteEDN(w, v, pretty)
	case "text":
		if tr, ok := textRenderer(v); ok {
			return tr.RenderText(w)
		}
		return WriteJSON(w, v, true)
	default:
		return Validate(format)
	}
}

func textRenderer(v any) (TextRenderer, bool) {
	if tr, ok := v.(TextRenderer); ok {
		return tr, true
	}
	switch env := v.(type) {
	case Envelope:
		tr, ok := env.Data.(TextRenderer)
		return tr, ok
	case *Envelope:
		tr, ok := env.Data.(TextRenderer)
		return tr, ok
	}
	return nil, false
}

// WriteJSON writes strict JSON followed by a newline.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
