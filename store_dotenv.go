// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/tagconf/blob/main/LICENSE.

package tagconf

import (
	"io"
	"os"

	"github.com/joho/godotenv"
)

// DotEnvFileStore is a store of a .env configuration file.
// The location of .env content based file is given as parameter.
func DotEnvFileStore(filePath string) Store {
	return StoreFunc(func() ([]Entry, error) {
		f, err := os.Open(filePath)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		return DotEnvReaderStore(f).Entries()
	})
}

// DotEnvReaderStore is a store of .env configuration from an [io.Reader].
func DotEnvReaderStore(reader io.Reader) Store {
	return StoreFunc(func() ([]Entry, error) {
		if seekReader, ok := reader.(io.Seeker); ok {
			_, _ = seekReader.Seek(0, io.SeekStart) // move to the beginning in case of a re-read.
		}
		envs, err := godotenv.Parse(reader)
		if err != nil {
			return nil, err
		}

		configMap := make(map[string]any, len(envs))
		for key, value := range envs {
			configMap[key] = value
		}

		return entriesFromMap(configMap)
	})
}
