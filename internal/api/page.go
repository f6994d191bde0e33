package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrUnrecognizedFormat means a collection endpoint answered with a shape
// that is neither a bare array nor a {results, next} page envelope. The
// fetch stops rather than guess.
var ErrUnrecognizedFormat = errors.New("api: unrecognized collection response format")

// GetPageFunc fetches one page body by relative path.
type GetPageFunc func(ctx context.Context, path string) ([]byte, error)

// page is one normalized page of a collection: its items, and the relative
// path of the next page ("" on the last page).
type page struct {
	items []json.RawMessage
	next  string
}

// envelope is the DRF pagination wrapper.
type envelope struct {
	Count    int               `json:"count"`
	Next     *string           `json:"next"`
	Previous *string           `json:"previous"`
	Results  []json.RawMessage `json:"results"`
}

// normalizePage decodes one of the two recognized collection shapes. A bare
// array is a final page. An envelope carries results plus an absolute next
// URL, which is rebased to a path relative to baseURL.
func normalizePage(baseURL string, body []byte) (page, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return page{}, ErrUnrecognizedFormat
	}

	switch trimmed[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return page{}, fmt.Errorf("%w: %v", ErrUnrecognizedFormat, err)
		}
		return page{items: items}, nil
	case '{':
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return page{}, fmt.Errorf("%w: %v", ErrUnrecognizedFormat, err)
		}
		if env.Results == nil {
			return page{}, ErrUnrecognizedFormat
		}
		p := page{items: env.Results}
		if env.Next != nil && *env.Next != "" {
			p.next = stripBase(baseURL, *env.Next)
		}
		return p, nil
	}
	return page{}, ErrUnrecognizedFormat
}

func stripBase(baseURL, next string) string {
	next = strings.TrimPrefix(next, strings.TrimRight(baseURL, "/"))
	return strings.TrimPrefix(next, "/")
}

// FetchAll retrieves a complete collection that the server may split across
// pages, following next links until the chain ends. Items come back in fetch
// order, untouched. The first failing page aborts the whole fetch and no
// partial result is returned; pages already fetched are discarded, matching
// the behavior callers have relied on since the first client.
func FetchAll(ctx context.Context, baseURL, startPath string, getPage GetPageFunc) ([]json.RawMessage, error) {
	var all []json.RawMessage
	for path := startPath; path != ""; {
		body, err := getPage(ctx, path)
		if err != nil {
			return nil, err
		}
		p, err := normalizePage(baseURL, body)
		if err != nil {
			return nil, err
		}
		all = append(all, p.items...)
		path = p.next
	}
	return all, nil
}

// decodeAll unmarshals every raw item into T, failing on the first bad item.
func decodeAll[T any](raw []json.RawMessage) ([]T, error) {
	out := make([]T, 0, len(raw))
	for _, r := range raw {
		var v T
		if err := json.Unmarshal(r, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
