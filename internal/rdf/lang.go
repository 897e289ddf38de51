package rdf

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// ErrMalformedLang is returned for language tags that are not BCP 47.
var ErrMalformedLang = errors.New("malformed language tag")

// NormalizeLang rejects language tags that are not well-formed BCP 47 and
// returns the tag in lowercase. Tags compare case-insensitively, so stored
// and queried literals both carry the lowercase form. Well-formed tags with
// unregistered subtags are accepted.
func NormalizeLang(tag string) (string, error) {
	_, err := language.Parse(tag)
	var ve language.ValueError
	if err != nil && !errors.As(err, &ve) {
		return "", fmt.Errorf("%w: %q", ErrMalformedLang, tag)
	}
	return strings.ToLower(tag), nil
}
