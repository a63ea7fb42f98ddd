// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/tagconf/blob/main/LICENSE.

package tagconf

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/actforgood/xerr"
)

// MissingPropertyError is returned when a key is not found in any store,
// neither under an active tag, nor untagged.
type MissingPropertyError struct {
	key string // the missing key.
}

// NewMissingPropertyError instantiates a new MissingPropertyError.
// The missing key must be provided.
func NewMissingPropertyError(key string) MissingPropertyError {
	return MissingPropertyError{key: key}
}

// Error returns string representation of the MissingPropertyError.
// It implements standard go error interface.
func (e MissingPropertyError) Error() string {
	return fmt.Sprintf(`key "%s" not found`, e.key)
}

// Key returns the missing key.
func (e MissingPropertyError) Key() string {
	return e.key
}

// Provider is the merge engine: it holds the active tags (most specific first)
// and the stores (in registration order), and resolves keys against them.
//
// AddTag and AddStore are meant to be called while assembling the provider;
// they must not be called concurrently with lookups.
type Provider struct {
	// tags is the list of active tags, most specific first.
	tags []string
	// stores is the list of registered stores, in registration order.
	stores []*storeState
	// ignoreCaseSensitivity is a flag indicating whether keys' case sensitivity should be ignored.
	ignoreCaseSensitivity bool
}

// NewProvider instantiates a new provider, with no tags and no stores.
func NewProvider(opts ...ProviderOption) *Provider {
	provider := new(Provider)

	// apply options, if any.
	for _, opt := range opts {
		opt(provider)
	}

	return provider
}

// AddTag appends a tag to the active tags, with lower priority than already added ones.
// Empty tags are ignored, as they would be indistinguishable from untagged entries.
func (provider *Provider) AddTag(tag string) {
	if tag == "" {
		return
	}
	provider.tags = append(provider.tags, tag)
}

// AddStore appends a store, with lower priority than already added ones.
func (provider *Provider) AddStore(store Store) {
	provider.stores = append(provider.stores, &storeState{store: store})
}

// Tags returns the active tags, most specific first.
func (provider *Provider) Tags() []string {
	return slices.Clone(provider.tags)
}

// Load populates all stores, if not already done.
// Each failing store contributes a StoreError to the returned error.
func (provider *Provider) Load() error {
	var mErr *xerr.MultiError
	for idx, state := range provider.stores {
		if err := state.populate(provider.normalizeKey); err != nil {
			mErr = mErr.Add(NewStoreError(idx, err))
		}
	}

	return mErr.ErrOrNil()
}

// Resolve returns the winning raw value for a key.
// Entries tagged with the most specific tag win, no matter the store they come from;
// among stores, the first registered one wins. Untagged entries are the fallback.
// A MissingPropertyError is returned if the key is found nowhere.
func (provider *Provider) Resolve(key string) (string, error) {
	if err := provider.Load(); err != nil {
		return "", err
	}

	normalizedKey := provider.normalizeKey(key)
	for _, tag := range provider.tags {
		for _, state := range provider.stores {
			if values, found := state.values[entryKey{tag: tag, key: normalizedKey}]; found {
				return values[0], nil
			}
		}
	}
	for _, state := range provider.stores {
		if values, found := state.values[entryKey{key: normalizedKey}]; found {
			return values[0], nil
		}
	}

	return "", NewMissingPropertyError(key)
}

// ResolveAll returns all the raw values of a key, in the same priority order
// Resolve uses. An empty list is returned if the key is found nowhere.
func (provider *Provider) ResolveAll(key string) ([]string, error) {
	if err := provider.Load(); err != nil {
		return nil, err
	}

	var (
		normalizedKey = provider.normalizeKey(key)
		result        = make([]string, 0)
		visitedTags   = make(map[string]struct{}, len(provider.tags))
	)
	for _, tag := range provider.tags {
		if _, visited := visitedTags[tag]; visited {
			continue
		}
		visitedTags[tag] = struct{}{}
		for _, state := range provider.stores {
			result = append(result, state.values[entryKey{tag: tag, key: normalizedKey}]...)
		}
	}
	for _, state := range provider.stores {
		result = append(result, state.values[entryKey{key: normalizedKey}]...)
	}

	return result, nil
}

// clone returns a copy of the provider which does not get affected by
// later AddTag / AddStore calls on the original. Stores' state is shared.
func (provider *Provider) clone() *Provider {
	return &Provider{
		tags:                  slices.Clone(provider.tags),
		stores:                slices.Clone(provider.stores),
		ignoreCaseSensitivity: provider.ignoreCaseSensitivity,
	}
}

// normalizeKey returns the key as it is stored/looked up internally.
func (provider *Provider) normalizeKey(key string) string {
	if provider.ignoreCaseSensitivity {
		return strings.ToUpper(key)
	}

	return key
}

// entryKey identifies a key bound (or not) to a tag.
type entryKey struct {
	tag string
	key string
}

// storeState holds the populated entries of a store.
type storeState struct {
	store  Store
	once   sync.Once
	values map[entryKey][]string // values in store's order.
	err    error
}

// populate reads store's entries once.
func (state *storeState) populate(normalizeKey func(string) string) error {
	state.once.Do(func() {
		entries, err := state.store.Entries()
		if err != nil {
			state.err = err

			return
		}
		values := make(map[entryKey][]string, len(entries))
		for _, entry := range entries {
			eKey := entryKey{tag: entry.Tag, key: normalizeKey(entry.Key)}
			values[eKey] = append(values[eKey], entry.Value)
		}
		state.values = values
	})

	return state.err
}

// ProviderOption defines optional function for configuring a Provider.
type ProviderOption func(*Provider)

// ProviderWithIgnoreCaseSensitivity disables case sensitivity for keys.
//
// For example, if a store contains a key "Foo", resolving "foo" / "FOO" / etc.
// will return Foo's value.
func ProviderWithIgnoreCaseSensitivity() ProviderOption {
	return func(provider *Provider) {
		provider.ignoreCaseSensitivity = true
	}
}
