// Package tomlver rewrites the version line of a seaside config file without
// touching any other byte of it.
package tomlver

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"regexp"
	"unicode/utf8"

	"github.com/Masterminds/semver/v3"
)

// ErrInvalidUTF8 indicates the config file is not UTF-8 text.
var ErrInvalidUTF8 = errors.New("config file is not valid UTF-8")

// versionLine matches `version = "..."` with an optional trailing comment.
var versionLine = regexp.MustCompile(`^[ \t]*version[ \t]*=[ \t]*".*"(?P<comment>[ \t]*(?:#.*)?)$`)

// Rewrite replaces the value of the first version line in the file at path
// with v. It reports whether a line matched. A file without a version line
// is written back unchanged apart from line-ending normalization.
func Rewrite(path string, v *semver.Version) (bool, error) {
	if v == nil {
		return false, errors.New("version is nil")
	}

	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	out, replaced, err := RewriteBytes(data, v.String())
	if err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}

	if err := os.WriteFile(path, out, info.Mode().Perm()); err != nil {
		return false, err
	}
	return replaced, nil
}

// RewriteBytes is Rewrite over an in-memory file.
//
// Input is split on \n; a trailing \r on each line is dropped and every line
// is re-emitted followed by \n.
func RewriteBytes(data []byte, version string) ([]byte, bool, error) {
	if !utf8.Valid(data) {
		return nil, false, ErrInvalidUTF8
	}

	lines := bytes.Split(data, []byte("\n"))
	if len(lines) > 0 && len(lines[len(lines)-1]) == 0 {
		lines = lines[:len(lines)-1]
	}

	replacement := []byte(`version = "` + version + `"${comment}`)

	var buf bytes.Buffer
	buf.Grow(len(data) + len(version))

	replaced := false
	for _, line := range lines {
		line = bytes.TrimSuffix(line, []byte("\r"))
		if !replaced {
			if m := versionLine.FindSubmatchIndex(line); m != nil {
				line = versionLine.Expand(nil, replacement, line, m)
				replaced = true
			}
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}

	return buf.Bytes(), replaced, nil
}
