// Package pathenv edits the per-user PATH list stored in the Windows
// registry at HKCU\Environment\Path.
//
// Changes are not broadcast with WM_SETTINGCHANGE; shells have to be
// restarted to see them.
package pathenv

import (
	"errors"
	"strings"

	"github.com/rs/zerolog"
)

// Delimiter separates PATH entries on Windows.
const Delimiter = ";"

// Sentinel errors for PATH mutation.
var (
	// ErrEmptyDir indicates an empty directory was passed to Add or Remove.
	ErrEmptyDir = errors.New("directory is empty")

	// ErrRegistry matches every failure opening, reading, or writing the
	// registry value.
	ErrRegistry = errors.New("registry failure")

	// ErrUnsupported indicates the registry is not available on this OS.
	ErrUnsupported = errors.New("the user PATH registry value only exists on windows")
)

// Add returns value with dir appended, or value unchanged and false when an
// entry already equals dir exactly. No normalization of case or trailing
// separators is performed.
func Add(value, dir string) (string, bool) {
	if Contains(value, dir) {
		return value, false
	}
	if value != "" && !strings.HasSuffix(value, Delimiter) {
		value += Delimiter
	}
	return value + dir, true
}

// Remove returns value without any entry equal to dir. The bool is false when
// nothing was removed.
func Remove(value, dir string) (string, bool) {
	segments := strings.Split(value, Delimiter)
	kept := segments[:0]
	for _, segment := range segments {
		if segment != dir {
			kept = append(kept, segment)
		}
	}
	updated := strings.Join(kept, Delimiter)
	return updated, len(updated) != len(value)
}

// Contains reports whether any entry of value equals dir. Entries added by
// the installer are usually last, so the list is scanned from the right.
func Contains(value, dir string) bool {
	for value != "" {
		i := strings.LastIndex(value, Delimiter)
		if value[i+1:] == dir {
			return true
		}
		if i < 0 {
			return false
		}
		value = value[:i]
	}
	return dir == ""
}

// Store reads and writes the raw PATH string.
type Store interface {
	// Read returns the current value; an absent value reads as "".
	Read() (string, error)
	Write(value string) error
}

// Mutator applies Add and Remove against a Store, writing only on change.
type Mutator struct {
	store  Store
	logger zerolog.Logger
}

// NewMutator returns a Mutator over store.
func NewMutator(store Store, logger zerolog.Logger) *Mutator {
	return &Mutator{store: store, logger: logger}
}

// Add registers dir in the user PATH if no entry equals it already.
// It reports whether the stored value changed.
func (m *Mutator) Add(dir string) (bool, error) {
	if dir == "" {
		return false, ErrEmptyDir
	}

	current, err := m.store.Read()
	if err != nil {
		return false, err
	}

	updated, changed := Add(current, dir)
	if !changed {
		m.logger.Debug().Str("operation", "path_add").Str("dir", dir).Msg("already in PATH")
		return false, nil
	}

	if err := m.store.Write(updated); err != nil {
		return false, err
	}
	m.logger.Debug().Str("operation", "path_add").Str("dir", dir).Msg("added to PATH")
	return true, nil
}

// Remove drops every entry equal to dir from the user PATH.
// It reports whether the stored value changed.
func (m *Mutator) Remove(dir string) (bool, error) {
	if dir == "" {
		return false, ErrEmptyDir
	}

	current, err := m.store.Read()
	if err != nil {
		return false, err
	}

	updated, changed := Remove(current, dir)
	if !changed {
		m.logger.Debug().Str("operation", "path_remove").Str("dir", dir).Msg("already not in PATH")
		return false, nil
	}

	if err := m.store.Write(updated); err != nil {
		return false, err
	}
	m.logger.Debug().Str("operation", "path_remove").Str("dir", dir).Msg("removed from PATH")
	return true, nil
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	Value  string
	Writes int
}

// Read implements Store.
func (s *MemoryStore) Read() (string, error) { return s.Value, nil }

// Write implements Store.
func (s *MemoryStore) Write(value string) error {
	s.Value = value
	s.Writes++
	return nil
}
