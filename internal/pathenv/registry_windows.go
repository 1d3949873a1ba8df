//go:build windows

package pathenv

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows/registry"
)

const (
	environmentKey = `Environment`
	pathValue      = "Path"
)

// RegistryStore reads and writes HKCU\Environment\Path.
type RegistryStore struct{}

// NewRegistryStore returns the registry-backed Store.
func NewRegistryStore() (*RegistryStore, error) {
	return &RegistryStore{}, nil
}

// Read implements Store. An absent Path value reads as "".
func (s *RegistryStore) Read() (string, error) {
	key, err := openEnvironment()
	if err != nil {
		return "", err
	}
	defer key.Close()

	value, _, err := key.GetStringValue(pathValue)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("%w: reading %s: %w", ErrRegistry, pathValue, err)
	}
	return value, nil
}

// Write implements Store. The value is written as REG_SZ.
func (s *RegistryStore) Write(value string) error {
	key, err := openEnvironment()
	if err != nil {
		return err
	}
	defer key.Close()

	if err := key.SetStringValue(pathValue, value); err != nil {
		return fmt.Errorf("%w: writing %s: %w", ErrRegistry, pathValue, err)
	}
	return nil
}

func openEnvironment() (registry.Key, error) {
	key, err := registry.OpenKey(registry.CURRENT_USER, environmentKey, registry.QUERY_VALUE|registry.SET_VALUE)
	if err != nil {
		return 0, fmt.Errorf("%w: opening HKCU\\%s: %w", ErrRegistry, environmentKey, err)
	}
	return key, nil
}
