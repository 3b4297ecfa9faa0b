package headers

import (
	"iter"

	"github.com/indigo-web/utils/strcomp"
)

type Header struct {
	Key, Value string
}

// Headers is an associative structure for storing header pairs. It acts as a map but uses
// linear search instead, which proves to be more efficient on the relatively low amount of
// entries a request usually carries. Keys are compared case-insensitively, and on
// duplicates the first added value wins.
type Headers struct {
	pairs []Header
}

func New() *Headers {
	return new(Headers)
}

// Add adds a new pair of key and value. Duplicates are preserved, however Get
// always returns the first one.
func (h *Headers) Add(key, value string) *Headers {
	h.pairs = append(h.pairs, Header{
		Key:   key,
		Value: value,
	})
	return h
}

// Get returns the first value, corresponding to the key, and a bool indicating whether
// the key was found at all.
func (h *Headers) Get(key string) (value string, found bool) {
	for _, pair := range h.pairs {
		if strcomp.EqualFold(key, pair.Key) {
			return pair.Value, true
		}
	}

	return "", false
}

// Value returns the first value, corresponding to the key. Otherwise, empty string is returned.
func (h *Headers) Value(key string) string {
	value, _ := h.Get(key)
	return value
}

// Has indicates, whether there's an entry of the key.
func (h *Headers) Has(key string) bool {
	_, found := h.Get(key)
	return found
}

// Iter returns an iterator over the pairs in the order they were added.
func (h *Headers) Iter() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, pair := range h.pairs {
			if !yield(pair.Key, pair.Value) {
				break
			}
		}
	}
}

// Len returns a number of stored pairs.
func (h *Headers) Len() int {
	return len(h.pairs)
}
