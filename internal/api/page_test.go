package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

const base = "https://colegio.example"

// fakePages serves canned bodies keyed by path and records the order of
// requests.
type fakePages struct {
	bodies map[string]string
	errs   map[string]error
	calls  []string
}

func (f *fakePages) get(_ context.Context, path string) ([]byte, error) {
	f.calls = append(f.calls, path)
	if err, ok := f.errs[path]; ok {
		return nil, err
	}
	body, ok := f.bodies[path]
	if !ok {
		return nil, fmt.Errorf("unexpected path %q", path)
	}
	return []byte(body), nil
}

func ints(raw []json.RawMessage) []int {
	out := make([]int, 0, len(raw))
	for _, r := range raw {
		var n int
		if err := json.Unmarshal(r, &n); err != nil {
			panic(err)
		}
		out = append(out, n)
	}
	return out
}

func TestFetchAllFollowsNextLinks(t *testing.T) {
	f := &fakePages{bodies: map[string]string{
		"api/items/":        `{"count":3,"next":"` + base + `/api/items/?page=2","previous":null,"results":[1,2]}`,
		"api/items/?page=2": `{"count":3,"next":null,"previous":"` + base + `/api/items/","results":[3]}`,
	}}
	got, err := FetchAll(context.Background(), base, "api/items/", f.get)
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if n := ints(got); len(n) != 3 || n[0] != 1 || n[1] != 2 || n[2] != 3 {
		t.Fatalf("got %v, want [1 2 3]", n)
	}
	if len(f.calls) != 2 || f.calls[1] != "api/items/?page=2" {
		t.Fatalf("calls = %v", f.calls)
	}
}

func TestFetchAllBareArrayIsFinal(t *testing.T) {
	f := &fakePages{bodies: map[string]string{
		"api/items/": `["a","b","c"]`,
	}}
	got, err := FetchAll(context.Background(), base, "api/items/", f.get)
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d items, want 3", len(got))
	}
	if len(f.calls) != 1 {
		t.Fatalf("bare array must end the fetch, calls = %v", f.calls)
	}
}

func TestFetchAllMidSequenceFailureDiscardsAll(t *testing.T) {
	boom := errors.New("boom")
	f := &fakePages{
		bodies: map[string]string{
			"api/items/": `{"results":[1,2],"next":"` + base + `/api/items/?page=2"}`,
		},
		errs: map[string]error{"api/items/?page=2": boom},
	}
	got, err := FetchAll(context.Background(), base, "api/items/", f.get)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if got != nil {
		t.Fatalf("partial results leaked: %v", got)
	}
}

func TestFetchAllUnrecognizedShape(t *testing.T) {
	for name, body := range map[string]string{
		"object without results": `{"id":1,"nombre":"Juan"}`,
		"scalar":                 `42`,
		"empty":                  ``,
		"malformed":              `{"results":`,
	} {
		t.Run(name, func(t *testing.T) {
			f := &fakePages{bodies: map[string]string{"p/": body}}
			_, err := FetchAll(context.Background(), base, "p/", f.get)
			if !errors.Is(err, ErrUnrecognizedFormat) {
				t.Fatalf("err = %v, want ErrUnrecognizedFormat", err)
			}
		})
	}
}

func TestNormalizePageStripsBaseURL(t *testing.T) {
	p, err := normalizePage(base, []byte(`{"results":[],"next":"`+base+`/api/items/?page=5"}`))
	if err != nil {
		t.Fatalf("normalizePage: %v", err)
	}
	if p.next != "api/items/?page=5" {
		t.Fatalf("next = %q", p.next)
	}

	// null next ends the chain.
	p, err = normalizePage(base, []byte(`{"results":[1],"next":null}`))
	if err != nil {
		t.Fatalf("normalizePage: %v", err)
	}
	if p.next != "" {
		t.Fatalf("next = %q, want empty", p.next)
	}
}
