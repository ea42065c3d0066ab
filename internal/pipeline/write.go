package pipeline

import (
	"os"
	"path/filepath"

	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/navexpand/internal/foundation/errors"
)

// Fingerprint returns the content fingerprint used to detect no-op writes.
func Fingerprint(data []byte) string {
	return mdfp.CalculateFingerprintFromParts("", string(data))
}

// writeFileAtomic writes data next to path and renames it into place,
// keeping the mode of an existing file.
func writeFileAtomic(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create temporary file").
			WithContext("path", path).
			Build()
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write output").
			WithContext("path", path).
			Build()
	}
	if err := tmp.Chmod(mode); err != nil {
		_ = tmp.Close()
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to set file mode").
			WithContext("path", path).
			Build()
	}
	if err := tmp.Close(); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write output").
			WithContext("path", path).
			Build()
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to replace output").
			WithContext("path", path).
			Build()
	}
	return nil
}
