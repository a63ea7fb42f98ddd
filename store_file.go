// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/tagconf/blob/main/LICENSE.

package tagconf

import (
	"errors"
	"path/filepath"
)

// ErrUnknownConfigFileExt is an error returned by [FileStore] if file extension
// does not match any supported format.
var ErrUnknownConfigFileExt = errors.New("unknown configuration file extension")

// FileStore is a factory for appropriate XFileStore based on file's extension.
// This is useful when you don't want to tie an application to a certain config format.
// Supported extensions are: .json, .yml, .yaml, .ini, .properties, .env, .toml.
func FileStore(filePath string) Store {
	switch filepath.Ext(filePath) {
	case ".json":
		return JSONFileStore(filePath)
	case ".yml", ".yaml":
		return YAMLFileStore(filePath)
	case ".env":
		return DotEnvFileStore(filePath)
	case ".ini":
		return NewIniFileStore(filePath)
	case ".toml":
		return TOMLFileStore(filePath)
	case ".properties":
		return PropertiesFileStore(filePath)
	}

	return StoreFunc(func() ([]Entry, error) {
		return nil, ErrUnknownConfigFileExt
	})
}
