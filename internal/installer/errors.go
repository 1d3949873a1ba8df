package installer

import (
	"errors"
	"io/fs"
	"os"

	"github.com/RosieTheGhostie/seaside-installer/internal/download"
	"github.com/RosieTheGhostie/seaside-installer/internal/pathenv"
	"github.com/RosieTheGhostie/seaside-installer/internal/prompt"
	"github.com/RosieTheGhostie/seaside-installer/internal/tomlver"
)

// Kind classifies a failure surfaced by Install or Uninstall.
type Kind int

// Failure kinds.
const (
	KindOther Kind = iota
	KindNetwork
	KindFilesystem
	KindRegistry
	KindUserInput
)

// String returns a short name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindFilesystem:
		return "filesystem"
	case KindRegistry:
		return "registry"
	case KindUserInput:
		return "user_input"
	default:
		return "other"
	}
}

// KindOf maps err onto a Kind. Registry failures are checked before
// filesystem ones, so a denied registry write is a registry failure.
func KindOf(err error) Kind {
	if err == nil {
		return KindOther
	}

	var pathErr *fs.PathError
	var linkErr *os.LinkError
	switch {
	case errors.Is(err, download.ErrNetwork):
		return KindNetwork
	case errors.Is(err, pathenv.ErrRegistry), errors.Is(err, pathenv.ErrUnsupported):
		return KindRegistry
	case errors.Is(err, prompt.ErrNoInput), errors.Is(err, prompt.ErrRead):
		return KindUserInput
	case errors.As(err, &pathErr), errors.As(err, &linkErr), errors.Is(err, tomlver.ErrInvalidUTF8):
		return KindFilesystem
	default:
		return KindOther
	}
}

// IsPermissionDenied reports whether err stems from missing privileges.
func IsPermissionDenied(err error) bool {
	return errors.Is(err, fs.ErrPermission)
}
