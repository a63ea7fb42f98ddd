// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/tagconf/blob/main/LICENSE.

package tagconf

import (
	"strings"

	"gopkg.in/ini.v1"
)

// IniFileStore is a store of INI content based files, where sections are tags.
type IniFileStore struct {
	// filePath is ini content based file to be parsed.
	filePath string
	// overrideFilePaths are ini files parsed after filePath, overriding its keys.
	overrideFilePaths []any
	// loadOpts are the original package parse options.
	loadOpts ini.LoadOptions
	// tagFunc is a function that returns the tag for a section.
	tagFunc func(section string) string
}

// NewIniFileStore instantiates a new IniFileStore object that reads
// INI configuration from a file.
// The location of INI content based file is given as parameter.
func NewIniFileStore(filePath string, opts ...IniFileStoreOption) IniFileStore {
	store := IniFileStore{
		filePath: filePath,
		loadOpts: ini.LoadOptions{},
		tagFunc:  defaultIniTagFunc,
	}

	// apply options, if any.
	for _, opt := range opts {
		opt(&store)
	}

	return store
}

// Entries returns the entries from INI file(s),
// or an error if something bad happens along the process.
func (store IniFileStore) Entries() ([]Entry, error) {
	cfg, err := ini.LoadSources(store.loadOpts, store.filePath, store.overrideFilePaths...)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0)
	for _, section := range cfg.Sections() {
		tag := store.tagFunc(section.Name())
		for _, key := range section.Keys() {
			entries = append(entries, Entry{
				Key:   key.Name(),
				Value: key.Value(),
				Tag:   tag,
			})
		}
	}

	return entries, nil
}

// IniFileStoreOption defines optional function for configuring
// an INI File Store.
type IniFileStoreOption func(*IniFileStore)

// IniFileStoreWithLoadOptions sets given ini load options on the store.
// By default, an empty object is used.
func IniFileStoreWithLoadOptions(iniLoadOpts ini.LoadOptions) IniFileStoreOption {
	return func(store *IniFileStore) {
		store.loadOpts = iniLoadOpts
	}
}

// IniFileStoreWithOverrideFiles sets additional ini files, parsed after the main one.
// A key found again in a later file (under the same section) overrides the previous value.
func IniFileStoreWithOverrideFiles(filePaths ...string) IniFileStoreOption {
	return func(store *IniFileStore) {
		store.overrideFilePaths = make([]any, 0, len(filePaths))
		for _, filePath := range filePaths {
			store.overrideFilePaths = append(store.overrideFilePaths, filePath)
		}
	}
}

// IniFileStoreWithSectionTagFunc sets given tag provider based on a section name.
// An empty returned tag means the section's keys are untagged.
//
// By default, the unnamed section and the "default" section are untagged,
// and any other section name is the tag of its keys.
func IniFileStoreWithSectionTagFunc(tagFunc func(section string) string) IniFileStoreOption {
	return func(store *IniFileStore) {
		store.tagFunc = tagFunc
	}
}

// defaultIniTagFunc is the default implementation for providing the tag
// of an ini section.
// Example: given the ini content:
//
//	host=localhost
//	[default]
//	port=80
//	[prod]
//	host=example.com
//
// "host" and "port" are untagged, and the second "host" is tagged with "prod".
func defaultIniTagFunc(section string) string {
	if section == ini.DefaultSection || strings.EqualFold(section, "default") {
		return ""
	}

	return section
}
