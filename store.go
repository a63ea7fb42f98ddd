// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/tagconf/blob/main/LICENSE.

package tagconf

import (
	"fmt"
	"slices"
)

// Store is a source of configuration entries.
type Store interface {
	// Entries returns store's entries or an error.
	//
	// Entries may be called again by different providers, so the returned
	// slice must not be shared with store's internal state.
	// A Provider calls Entries at most once.
	Entries() ([]Entry, error)
}

// The StoreFunc type is an adapter to allow the use of
// ordinary functions as Stores. If fn is a function
// with the appropriate signature, StoreFunc(fn) is a
// Store that calls fn.
type StoreFunc func() ([]Entry, error)

// Entries calls fn().
func (fn StoreFunc) Entries() ([]Entry, error) {
	return fn()
}

// StoreError is returned when a store could not be populated.
// It is distinct from a missing key, and it is returned by any lookup
// as long as the failing store is registered.
type StoreError struct {
	idx int   // store's registration index.
	err error // the original error.
}

// NewStoreError instantiates a new StoreError.
// The registration index of the store and the original error must be provided.
func NewStoreError(idx int, err error) StoreError {
	return StoreError{idx: idx, err: err}
}

// Error returns string representation of the StoreError.
// It implements standard go error interface.
func (e StoreError) Error() string {
	return fmt.Sprintf("store #%d could not be populated: %v", e.idx, e.err)
}

// Unwrap returns the original error.
func (e StoreError) Unwrap() error {
	return e.err
}

// Index returns the registration index of the failing store.
func (e StoreError) Index() int {
	return e.idx
}

// MapStore is an explicit go configuration map store.
// Nested maps are flattened using "." as separator, values are rendered
// as strings, and "@tag." prefixed keys are bound to the given tag.
//
// It can be used for example to provide application hardcoded defaults:
//
//	tagconf.MapStore(map[string]any{
//		"db.port":       5432,
//		"@test.db.port": 15432,
//	})
func MapStore(configMap map[string]any) Store {
	// compute entries now to preserve state at current time.
	entries, err := entriesFromMap(flattenConfigMap(configMap))

	return StoreFunc(func() ([]Entry, error) {
		if err != nil {
			return nil, err
		}

		return slices.Clone(entries), nil
	})
}

// EntriesStore returns a store holding exactly the given entries, in given order.
func EntriesStore(entries ...Entry) Store {
	entriesCopy := slices.Clone(entries)

	return StoreFunc(func() ([]Entry, error) {
		return slices.Clone(entriesCopy), nil
	})
}
