package organizer

import (
	"fmt"
	"os"

	"github.com/desertthunder/tidy/internal/shared"
)

// maxSuffix bounds the collision-suffix search so resolution always
// terminates.
const maxSuffix = 9999

// EnsureCategoryDir ensures that base/category exists as a directory, creating
// it (single level, 0755) when absent.
//
// Returns the category path and whether the directory was created by this
// call. A path occupied by a non-directory fails with
// [shared.ErrNotADirectory]; creation failures carry the underlying OS error.
// Idempotent once the directory exists.
func EnsureCategoryDir(base, category string) (string, bool, error) {
	path := JoinPath(base, category)

	info, err := os.Stat(path)
	if err == nil {
		if info.IsDir() {
			return path, false, nil
		}
		return path, false, fmt.Errorf("%w: %s", shared.ErrNotADirectory, path)
	}
	if !os.IsNotExist(err) {
		return path, false, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	// Single-level create: the parent was validated by the orchestrator.
	if err := os.Mkdir(path, 0755); err != nil {
		return path, false, fmt.Errorf("failed to create directory %s: %w", path, err)
	}

	return path, true, nil
}

// ResolveUnique finds a destination path inside categoryDir that no existing
// entry occupies.
//
// The plain filename is the common zero-cost case; on collision the stem gets
// numeric suffixes ("report.txt" -> "report_1.txt") up to [maxSuffix], after
// which resolution fails with [shared.ErrNameExhausted].
//
// The existence check is not atomic with the later rename. For a single-user
// local tool that window is benign; concurrent runs against the same
// directory are documented as unsupported.
func ResolveUnique(categoryDir, filename string) (string, error) {
	candidate := JoinPath(categoryDir, filename)
	if _, err := os.Lstat(candidate); os.IsNotExist(err) {
		return candidate, nil
	}

	stem, ext := splitStem(filename)
	for i := 1; i <= maxSuffix; i++ {
		candidate = JoinPath(categoryDir, fmt.Sprintf("%s_%d%s", stem, i, ext))
		if _, err := os.Lstat(candidate); os.IsNotExist(err) {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: %s in %s", shared.ErrNameExhausted, filename, categoryDir)
}
