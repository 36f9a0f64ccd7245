package reddit_archiver

import (
	"os"

	"go.uber.org/zap"
)

// Validate reports whether path holds a usable download artifact. A missing
// path is invalid; a zero-byte file is invalid and is deleted before
// returning; anything else is valid.
func Validate(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if info.Size() == 0 {
		if err := os.Remove(path); err != nil {
			zap.S().Named("validate").Warnf("failed to delete empty file %s: %v", path, err)
		}
		return false
	}
	return true
}
