package fsutil

import (
	"os"

	cp "github.com/otiai10/copy"

	"github.com/modctx/cli/internal/errors"
)

// CopyDir recursively duplicates the directory tree at src to dst.
// The source remains in place.
func CopyDir(src, dst string) error {
	if err := cp.Copy(src, dst); err != nil {
		return errors.NewIOError("copying "+src+": "+err.Error(), dst)
	}
	return nil
}

// MoveDir relocates the directory tree at src to dst. The source is
// removed. A plain rename is attempted first; when it fails (typically
// crossing filesystems) the tree is copied and the source deleted.
func MoveDir(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	if err := cp.Copy(src, dst); err != nil {
		return errors.NewIOError("moving "+src+": "+err.Error(), dst)
	}
	if err := os.RemoveAll(src); err != nil {
		return errors.NewIOError("removing moved source: "+err.Error(), src)
	}
	return nil
}
