package platform

import (
	"os"
	"runtime"

	"github.com/spf13/afero"
)

// TemplateFileMode is the mode given to a materialized file: the source's
// bits plus owner read/write and world read. Embedded templates report 0444,
// and generated projects must stay editable.
func TemplateFileMode(src os.FileMode) os.FileMode {
	return src.Perm() | 0o644
}

// SetMode applies mode to path on fsys. Windows has no Unix permission
// bits, so it is a no-op there.
func SetMode(fsys afero.Fs, path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return fsys.Chmod(path, mode)
}
