//go:build !windows

package pathenv

// RegistryStore is unavailable outside Windows.
type RegistryStore struct{}

// NewRegistryStore always fails with ErrUnsupported on this OS.
func NewRegistryStore() (*RegistryStore, error) {
	return nil, ErrUnsupported
}

// Read implements Store.
func (s *RegistryStore) Read() (string, error) { return "", ErrUnsupported }

// Write implements Store.
func (s *RegistryStore) Write(string) error { return ErrUnsupported }
