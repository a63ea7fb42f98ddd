// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/tagconf/blob/main/LICENSE.

package tagconf

import (
	"github.com/actforgood/xlog"
)

// Builder assembles a Configuration: active tags first, then stores.
//
// Usage example:
//
//	cfg, err := tagconf.NewBuilder().
//		CreateSystemPropertiesStore().
//		CreatePropertiesStore("config/app.properties").
//		CreateIniFileStore("config/app.ini").
//		Build()
type Builder struct {
	// provider accumulates tags and stores.
	provider *Provider
	// registry is the converter registry of the built configuration.
	registry *ConverterRegistry
	// tagResolver provides the initial tags.
	tagResolver TagResolver
	// logger is an optional logger.
	logger xlog.Logger
	// errHandler is an optional handler for errors occurred during Build.
	errHandler func(error)
	// ignoreCaseSensitivity is a flag indicating whether keys' case sensitivity should be ignored.
	ignoreCaseSensitivity bool
}

// NewBuilder instantiates a new Builder.
// Initial tags are taken from the TagResolver, by default the
// TAGCONF_TAGS environment variable (see EnvTagResolver).
func NewBuilder(opts ...BuilderOption) *Builder {
	builder := &Builder{
		registry:    DefaultConverterRegistry(),
		tagResolver: EnvTagResolver(DefaultTagsEnvName),
	}

	// apply options, if any.
	for _, opt := range opts {
		opt(builder)
	}

	var providerOpts []ProviderOption
	if builder.ignoreCaseSensitivity {
		providerOpts = append(providerOpts, ProviderWithIgnoreCaseSensitivity())
	}
	builder.provider = NewProvider(providerOpts...)
	for _, tag := range builder.tagResolver.Tags() {
		builder.provider.AddTag(tag)
	}

	return builder
}

// AddCurrentTag appends a tag, less specific than already added ones.
func (builder *Builder) AddCurrentTag(tag string) *Builder {
	builder.provider.AddTag(tag)

	return builder
}

// AddStore appends a store, with lower priority than already added ones.
func (builder *Builder) AddStore(store Store) *Builder {
	builder.provider.AddStore(store)

	return builder
}

// CreateSystemPropertiesStore appends a store of the process environment.
func (builder *Builder) CreateSystemPropertiesStore(opts ...EnvStoreOption) *Builder {
	return builder.AddStore(EnvStore(opts...))
}

// CreatePropertiesStore appends a store of the given .properties files.
func (builder *Builder) CreatePropertiesStore(filePaths ...string) *Builder {
	return builder.AddStore(PropertiesFileStore(filePaths...))
}

// CreateEncryptedPropertiesStore appends a store of the given .properties files
// holding encrypted values. The password is read from the passwordEnvName environment variable.
func (builder *Builder) CreateEncryptedPropertiesStore(passwordEnvName string, filePaths ...string) *Builder {
	return builder.AddStore(EncryptedPropertiesFileStore(passwordEnvName, filePaths...))
}

// CreateIniFileStore appends a store of the given ini files. Sections are tags.
func (builder *Builder) CreateIniFileStore(filePath string, opts ...IniFileStoreOption) *Builder {
	return builder.AddStore(NewIniFileStore(filePath, opts...))
}

// CreateObjectStore appends a store of the given in-memory objects (structs / maps).
func (builder *Builder) CreateObjectStore(objects ...any) *Builder {
	return builder.AddStore(ObjectStore(objects...))
}

// CreateFileStore appends a store for the given file, based on its extension.
func (builder *Builder) CreateFileStore(filePath string) *Builder {
	return builder.AddStore(FileStore(filePath))
}

// Build populates all the stores and returns the Configuration.
// An error is returned if any store could not be populated.
//
// The returned Configuration is not affected by later calls on the Builder.
func (builder *Builder) Build() (*Configuration, error) {
	if err := builder.provider.Load(); err != nil {
		if builder.errHandler != nil {
			builder.errHandler(err)
		}

		return nil, err
	}

	cfg := NewConfiguration(builder.provider, builder.registry)
	if builder.logger != nil {
		builder.logger.Debug(
			xlog.MessageKey, "[tagconf] configuration built",
			"tags", cfg.Tags(),
			"stores", len(builder.provider.stores),
		)
	}

	return cfg, nil
}

// BuilderOption defines optional function for configuring a Builder.
type BuilderOption func(*Builder)

// BuilderWithTagResolver sets the provider of initial tags.
// By default, EnvTagResolver(DefaultTagsEnvName) is used.
func BuilderWithTagResolver(tagResolver TagResolver) BuilderOption {
	return func(builder *Builder) {
		builder.tagResolver = tagResolver
	}
}

// BuilderWithConverterRegistry sets the converter registry for the built Configuration.
// By default, the process-wide registry is used.
func BuilderWithConverterRegistry(registry *ConverterRegistry) BuilderOption {
	return func(builder *Builder) {
		builder.registry = registry
	}
}

// BuilderWithLogger sets a logger.
func BuilderWithLogger(logger xlog.Logger) BuilderOption {
	return func(builder *Builder) {
		builder.logger = logger
	}
}

// BuilderWithErrorHandler sets a handler for the error returned by Build.
// You can log the error, for example, see LogErrorHandler.
func BuilderWithErrorHandler(errHandler func(error)) BuilderOption {
	return func(builder *Builder) {
		builder.errHandler = errHandler
	}
}

// BuilderWithIgnoreCaseSensitivity disables case sensitivity for keys.
func BuilderWithIgnoreCaseSensitivity() BuilderOption {
	return func(builder *Builder) {
		builder.ignoreCaseSensitivity = true
	}
}
