package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Configuration for Argon2id hashing.
const (
	memory      = 19 * 1024 // KiB
	iterations  = 2
	parallelism = 1
	keyLength   = 32
	saltLength  = 16
)

var (
	pepperMu sync.RWMutex
	pepper   string
)

// LoadPepper reads the server pepper from path, creating the file with a
// fresh random pepper when it does not exist yet. An empty path leaves the
// hasher unpeppered.
//
// The pepper must be loaded before any password is hashed; changing it later
// invalidates every stored hash.
func LoadPepper(path string) error {
	if path == "" {
		SetPepper("")
		return nil
	}

	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("create pepper dir: %w", err)
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		buf := make([]byte, keyLength)
		if _, err := rand.Read(buf); err != nil {
			return fmt.Errorf("generate pepper: %w", err)
		}
		fresh := base64.RawURLEncoding.EncodeToString(buf)
		if err := os.WriteFile(path, []byte(fresh), 0600); err != nil {
			return fmt.Errorf("write pepper: %w", err)
		}
		SetPepper(fresh)
		return nil
	}
	if err != nil {
		return fmt.Errorf("read pepper: %w", err)
	}

	SetPepper(string(data))
	return nil
}

// SetPepper replaces the in-memory pepper.
func SetPepper(p string) {
	pepperMu.Lock()
	pepper = p
	pepperMu.Unlock()
}

func currentPepper() string {
	pepperMu.RLock()
	defer pepperMu.RUnlock()
	return pepper
}
