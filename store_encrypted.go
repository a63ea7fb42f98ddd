// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/tagconf/blob/main/LICENSE.

package tagconf

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	encryptedValuePrefix = "ENC("
	encryptedValueSuffix = ")"

	encryptionSaltSize   = 16
	encryptionKeySize    = 32 // AES-256
	encryptionIterations = 10000
)

var (
	// ErrMissingPassword is returned by EncryptedPropertiesFileStore if the
	// password environment variable is not set.
	ErrMissingPassword = errors.New("encryption password is not set")
	// ErrMalformedEncryptedValue is returned if an encrypted value is not of the
	// form "ENC(<base64 payload>)", or its payload is truncated.
	ErrMalformedEncryptedValue = errors.New("malformed encrypted value")
	// ErrDecryptionFailed is returned if a value cannot be decrypted with the given password.
	ErrDecryptionFailed = errors.New("value could not be decrypted")
)

// EncryptedPropertiesFileStore is a store of .properties configuration files
// (see PropertiesFileStore) holding encrypted values.
// Values of the form "ENC(...)" (see EncryptValue) get decrypted with the password read
// from passwordEnvName environment variable; other values are returned as they are.
func EncryptedPropertiesFileStore(passwordEnvName string, filePaths ...string) Store {
	return StoreFunc(func() ([]Entry, error) {
		password := os.Getenv(passwordEnvName)
		if password == "" {
			return nil, fmt.Errorf("%w (env %q)", ErrMissingPassword, passwordEnvName)
		}

		return DecryptStore(PropertiesFileStore(filePaths...), password).Entries()
	})
}

// DecryptStore decorates another store to decrypt its "ENC(...)" values
// with the given password.
func DecryptStore(store Store, password string) Store {
	return StoreFunc(func() ([]Entry, error) {
		entries, err := store.Entries()
		if err != nil {
			return entries, err
		}

		for idx, entry := range entries {
			if !IsEncryptedValue(entry.Value) {
				continue
			}
			decrypted, err := DecryptValue(password, entry.Value)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", entry.Key, err)
			}
			entries[idx].Value = decrypted
		}

		return entries, nil
	})
}

// IsEncryptedValue returns true if value is of the form "ENC(...)".
func IsEncryptedValue(value string) bool {
	return len(value) > len(encryptedValuePrefix)+len(encryptedValueSuffix) &&
		strings.HasPrefix(value, encryptedValuePrefix) &&
		strings.HasSuffix(value, encryptedValueSuffix)
}

// EncryptValue encrypts a plain value with the given password.
// The result is of the form "ENC(<base64 payload>)" and can be put in a properties file
// loaded through EncryptedPropertiesFileStore.
//
// The key is derived with PBKDF2-SHA256 from the password and a random salt,
// the value is sealed with AES-256-GCM.
func EncryptValue(password, plainValue string) (string, error) {
	salt := make([]byte, encryptionSaltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	aead, err := newEncryptionAEAD(password, salt)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	payload := make([]byte, 0, len(salt)+len(nonce)+len(plainValue)+aead.Overhead())
	payload = append(payload, salt...)
	payload = append(payload, nonce...)
	payload = aead.Seal(payload, nonce, []byte(plainValue), nil)

	return encryptedValuePrefix + base64.StdEncoding.EncodeToString(payload) + encryptedValueSuffix, nil
}

// DecryptValue decrypts a value produced by EncryptValue.
func DecryptValue(password, encryptedValue string) (string, error) {
	if !IsEncryptedValue(encryptedValue) {
		return "", ErrMalformedEncryptedValue
	}
	encoded := encryptedValue[len(encryptedValuePrefix) : len(encryptedValue)-len(encryptedValueSuffix)]
	payload, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedEncryptedValue, err)
	}
	if len(payload) < encryptionSaltSize {
		return "", ErrMalformedEncryptedValue
	}

	aead, err := newEncryptionAEAD(password, payload[:encryptionSaltSize])
	if err != nil {
		return "", err
	}
	payload = payload[encryptionSaltSize:]
	if len(payload) < aead.NonceSize()+aead.Overhead() {
		return "", ErrMalformedEncryptedValue
	}
	nonce, sealed := payload[:aead.NonceSize()], payload[aead.NonceSize():]
	plainValue, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", ErrDecryptionFailed
	}

	return string(plainValue), nil
}

// newEncryptionAEAD derives the key from password and salt and returns the AES-GCM cipher.
func newEncryptionAEAD(password string, salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key([]byte(password), salt, encryptionIterations, encryptionKeySize, sha256.New)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	return cipher.NewGCM(block)
}
