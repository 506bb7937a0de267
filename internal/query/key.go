// Package query wraps the remote data access layer with per-resource
// caching, staleness windows, retry policy, in-flight request deduplication
// and optimistic mutation for the admin flows.
package query

import (
	"encoding/json"
	"fmt"
)

// Key identifies a cached result: resource kind, operation kind, and the
// normalized parameters. Two calls are cache-equivalent iff their normalized
// parameters are deeply equal; callers clamp pagination before building the
// key so out-of-range inputs collapse onto the nearest valid key.
type Key struct {
	Resource Resource
	Op       string
	params   string
}

// NewKey builds a cache key. params is canonicalized through JSON encoding
// (struct field order is fixed and map keys are sorted), so any comparable
// shape works. A nil params means the operation takes none.
func NewKey(resource Resource, op string, params any) Key {
	k := Key{Resource: resource, Op: op}
	if params == nil {
		return k
	}
	data, err := json.Marshal(params)
	if err != nil {
		// Unencodable params cannot collide meaningfully; fall back to the
		// type's string form so the entry is still keyed deterministically.
		k.params = fmt.Sprintf("%+v", params)
		return k
	}
	k.params = string(data)
	return k
}
