// Package location maps the address bar to search criteria and back.
//
// The query string is the single source of truth for the criteria in effect:
// callers derive criteria with Read and produce the next address with Write,
// never keeping a second copy that could drift.
package location

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/kailas-cloud/brewdex/internal/domain/criteria"
)

// Query string keys owned by the list screen.
const (
	KeySearch = "search"
	KeyType   = "type"
	KeyCity   = "city"
)

// Route paths.
const (
	ListPath      = "/"
	DetailPrefix  = "/brewery/"
	DetailPattern = "/brewery/{id}"
)

var managedKeys = [...]string{KeySearch, KeyType, KeyCity}

// Read parses criteria from a raw query string (without the leading '?').
// Absent keys map to empty values; for repeated keys the first value wins.
func Read(rawQuery string) criteria.Criteria {
	// ParseQuery keeps every well-formed pair even when it reports an error.
	values, _ := url.ParseQuery(strings.TrimPrefix(rawQuery, "?"))
	return criteria.Criteria{
		Query: values.Get(KeySearch),
		Type:  values.Get(KeyType),
		City:  values.Get(KeyCity),
	}
}

// Write returns rawQuery with the managed keys set to c's values.
// Empty values delete their key. Unrelated pairs are kept verbatim and in order;
// a managed key already present keeps its position, new ones are appended.
func Write(rawQuery string, c criteria.Criteria) string {
	want := map[string]string{
		KeySearch: c.Query,
		KeyType:   c.Type,
		KeyCity:   c.City,
	}
	written := make(map[string]bool, len(want))

	var parts []string
	for _, pair := range strings.Split(strings.TrimPrefix(rawQuery, "?"), "&") {
		if pair == "" {
			continue
		}
		rawKey, _, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			key = rawKey
		}

		value, managed := want[key]
		if !managed {
			parts = append(parts, pair)
			continue
		}
		if !written[key] && value != "" {
			parts = append(parts, encodePair(key, value))
		}
		written[key] = true
	}

	for _, key := range managedKeys {
		if value := want[key]; !written[key] && value != "" {
			parts = append(parts, encodePair(key, value))
		}
	}
	return strings.Join(parts, "&")
}

func encodePair(key, value string) string {
	return url.QueryEscape(key) + "=" + url.QueryEscape(value)
}

// Build joins a path and a raw query into a location string.
func Build(path, rawQuery string) string {
	if path == "" {
		path = ListPath
	}
	if rawQuery == "" {
		return path
	}
	return path + "?" + rawQuery
}

// Split parses a location into its path and raw query.
// Scheme and host, when present, are discarded.
func Split(loc string) (path, rawQuery string, err error) {
	u, err := url.Parse(loc)
	if err != nil {
		return "", "", fmt.Errorf("parse location %q: %w", loc, err)
	}
	path = u.EscapedPath()
	if path == "" {
		path = ListPath
	}
	return path, u.RawQuery, nil
}

// Normalize returns loc in its canonical "path?query" form.
func Normalize(loc string) (string, error) {
	path, rawQuery, err := Split(loc)
	if err != nil {
		return "", err
	}
	return Build(path, rawQuery), nil
}

// WithCriteria returns loc with its query string rewritten for c, keeping the path.
func WithCriteria(loc string, c criteria.Criteria) (string, error) {
	path, rawQuery, err := Split(loc)
	if err != nil {
		return "", err
	}
	return Build(path, Write(rawQuery, c)), nil
}

// DetailPath returns the location of a brewery's detail screen.
func DetailPath(id string) string {
	return DetailPrefix + url.PathEscape(id)
}
