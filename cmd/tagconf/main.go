// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/tagconf/blob/main/LICENSE.

// Command tagconf resolves configuration keys from files, the way an application
// using package tagconf would, and encrypts values for encrypted properties files.
//
// Usage:
//
//	tagconf [flags] get KEY
//	tagconf [flags] encrypt VALUE
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/actforgood/xlog"
	"golang.org/x/text/language"

	"github.com/actforgood/tagconf"
)

var errUsage = errors.New("invalid usage")

// valueTypes maps -type flag values to Go types.
var valueTypes = map[string]reflect.Type{
	"string":   reflect.TypeFor[string](),
	"bool":     reflect.TypeFor[bool](),
	"int":      reflect.TypeFor[int](),
	"int64":    reflect.TypeFor[int64](),
	"float64":  reflect.TypeFor[float64](),
	"duration": reflect.TypeFor[time.Duration](),
	"locale":   reflect.TypeFor[language.Tag](),
}

// fileList collects repeated -file flags.
type fileList []string

func (files *fileList) String() string {
	return strings.Join(*files, ",")
}

func (files *fileList) Set(value string) error {
	*files = append(*files, value)

	return nil
}

func main() {
	logger := xlog.NewSyncLogger(os.Stderr)
	exitCode := run(os.Args[1:], os.Stdout, logger)
	_ = logger.Close()
	os.Exit(exitCode)
}

// run executes the command and returns the exit code.
func run(args []string, out io.Writer, logger xlog.Logger) int {
	var (
		files   fileList
		flgSet  = flag.NewFlagSet("tagconf", flag.ContinueOnError)
		tags    = flgSet.String("tags", "", "active tags, comma separated, most specific first (default $"+tagconf.DefaultTagsEnvName+")")
		withEnv = flgSet.Bool("env", false, "add the process environment as the first store")
		typ     = flgSet.String("type", "string", "value type: string, bool, int, int64, float64, duration, locale")
		pwdEnv  = flgSet.String("password-env", "TAGCONF_PASSWORD", "environment variable holding the password of encrypted values")
	)
	flgSet.Var(&files, "file", "configuration file (.properties, .ini, .env, .json, .yaml, .yml, .toml), repeatable, first has priority")
	flgSet.SetOutput(out)
	if err := flgSet.Parse(args); err != nil {
		return 2
	}
	if flgSet.NArg() != 2 {
		fmt.Fprintln(out, "usage: tagconf [flags] get KEY | tagconf [flags] encrypt VALUE")
		flgSet.PrintDefaults()

		return 2
	}

	var (
		result   string
		err      error
		password = os.Getenv(*pwdEnv)
	)
	switch flgSet.Arg(0) {
	case "get":
		result, err = get(flgSet.Arg(1), *typ, *tags, *withEnv, files, password)
	case "encrypt":
		if password == "" {
			err = fmt.Errorf("%w (env %q)", tagconf.ErrMissingPassword, *pwdEnv)
		} else {
			result, err = tagconf.EncryptValue(password, flgSet.Arg(1))
		}
	default:
		err = fmt.Errorf("%w: unknown command %q", errUsage, flgSet.Arg(0))
	}
	if err != nil {
		logger.Error(
			xlog.MessageKey, "[tagconf] command failed",
			xlog.ErrorKey, xlog.StackErr(err),
		)
		if errors.Is(err, errUsage) {
			return 2
		}

		return 1
	}
	fmt.Fprintln(out, result)

	return 0
}

// get resolves a key and renders its value converted to the given type.
func get(key, typeName, tags string, withEnv bool, files []string, password string) (string, error) {
	typ, found := valueTypes[typeName]
	if !found {
		return "", fmt.Errorf("%w: unknown type %q", errUsage, typeName)
	}

	var opts []tagconf.BuilderOption
	if tags != "" {
		opts = append(opts, tagconf.BuilderWithTagResolver(tagconf.StaticTagResolver(tagconf.SplitTags(tags)...)))
	}
	builder := tagconf.NewBuilder(opts...)
	if withEnv {
		builder.CreateSystemPropertiesStore()
	}
	for _, file := range files {
		store := tagconf.FileStore(file)
		if password != "" {
			store = tagconf.DecryptStore(store, password)
		}
		builder.AddStore(store)
	}
	cfg, err := builder.Build()
	if err != nil {
		return "", err
	}

	value, err := cfg.Evaluate(typ, key)
	if err != nil {
		return "", err
	}
	conv, err := tagconf.DefaultConverterRegistry().Resolve(typ)
	if err != nil {
		return "", err
	}

	return conv.ToString(value)
}
