package organizer

import (
	"os"
	"strings"
)

// JoinPath joins a directory and a name into a single path, inserting the
// platform separator only when dir does not already end with one.
//
// Unlike [path/filepath.Join] it never cleans the result, so a caller-supplied
// trailing separator or "." prefix survives verbatim. String-only; the
// filesystem is never consulted.
func JoinPath(dir, name string) string {
	if dir == "" {
		return name
	}
	if strings.HasSuffix(dir, "/") || strings.HasSuffix(dir, string(os.PathSeparator)) {
		return dir + name
	}
	return dir + string(os.PathSeparator) + name
}

// splitStem splits a filename into (stem, ext) at the last dot, with ext
// keeping the dot itself.
//
// Dotless names and dotfiles yield the whole name as the stem and an empty
// ext, matching [ExtensionOf].
func splitStem(filename string) (string, string) {
	idx := strings.LastIndex(filename, ".")
	if idx <= 0 {
		return filename, ""
	}
	return filename[:idx], filename[idx:]
}
