// Package ownership hands files created by a sudo-elevated installer back to
// the user who invoked sudo.
package ownership

import (
	"fmt"
	"io/fs"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
)

// Owner is a resolved uid/gid pair.
type Owner struct {
	Name string
	UID  int
	GID  int
}

// Lookup resolves the named user's uid and primary gid.
func Lookup(name string) (Owner, error) {
	u, err := user.Lookup(name)
	if err != nil {
		return Owner{}, fmt.Errorf("looking up user %s: %w", name, err)
	}
	uid, err := strconv.Atoi(u.Uid)
	if err != nil {
		return Owner{}, fmt.Errorf("user %s has non-numeric uid %q", name, u.Uid)
	}
	gid, err := strconv.Atoi(u.Gid)
	if err != nil {
		return Owner{}, fmt.Errorf("user %s has non-numeric gid %q", name, u.Gid)
	}
	return Owner{Name: name, UID: uid, GID: gid}, nil
}

// Current returns the owner of the running process.
func Current() Owner {
	name := ""
	if u, err := user.Current(); err == nil {
		name = u.Username
	}
	return Owner{Name: name, UID: os.Getuid(), GID: os.Getgid()}
}

// Apply changes the owner of root and everything below it. Symlinks are
// changed themselves, never followed.
func (o Owner) Apply(root string) error {
	return filepath.WalkDir(root, func(path string, _ fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := os.Lchown(path, o.UID, o.GID); err != nil {
			return fmt.Errorf("transferring ownership of %s to %s: %w", path, o.Name, err)
		}
		return nil
	})
}
