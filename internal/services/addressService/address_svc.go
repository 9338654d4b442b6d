// Package addressservice normalizes free-text addresses into canonical
// token strings before they are sent to the geocoder.
package addressservice

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// AddressError is returned for empty or unparsable address input. Original
// and Parsed carry diagnostics when the failure was a parse conflict.
type AddressError struct {
	Reason   string
	Original string
	Parsed   string
}

func (e *AddressError) Error() string {
	if e.Original != "" {
		return fmt.Sprintf("address error: %s: %s, %s", e.Reason, e.Parsed, e.Original)
	}
	return "address error: " + e.Reason
}

// Sanitizer normalizes addresses through a Parser collaborator.
type Sanitizer struct {
	parser Parser
}

// NewSanitizer returns a Sanitizer using parser, or the default token
// parser when parser is nil.
func NewSanitizer(parser Parser) *Sanitizer {
	if parser == nil {
		parser = NewParser()
	}
	return &Sanitizer{parser: parser}
}

// Sanitize decomposes raw into labeled components, discards the labels and
// rejoins the component values with single spaces, in parser order.
func (s *Sanitizer) Sanitize(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", &AddressError{Reason: fmt.Sprintf("missing address, input provided: %q", raw)}
	}

	components, err := s.parser.Parse(raw)
	if err != nil {
		var repeated *RepeatedLabelError
		if errors.As(err, &repeated) {
			return "", &AddressError{
				Reason:   "parse conflict",
				Original: repeated.Original,
				Parsed:   repeated.Parsed,
			}
		}
		return "", &AddressError{Reason: fmt.Sprintf("error parsing address: %v", err)}
	}

	if len(components) == 0 {
		return "", &AddressError{Reason: fmt.Sprintf("no components, input provided: %q", raw)}
	}

	sanitized := joinValues(components)
	slog.Debug("sanitized address", "address", sanitized)

	return sanitized, nil
}
