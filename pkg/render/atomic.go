package render

import (
	"os"
	"path/filepath"
)

// writeAtomic writes data to p through a temporary file in the same
// directory, so p is either fully written or left as it was
func writeAtomic(p string, mode os.FileMode, data []byte) (err error) {
	f, err := os.CreateTemp(filepath.Dir(p), ".cutter-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	if err = f.Chmod(mode); err != nil {
		return err
	}
	if _, err = f.Write(data); err != nil {
		return err
	}
	if err = f.Sync(); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, p)
}
