// Package output persists ramp collections as indented GeoJSON files.
package output

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"

	"github.com/sells-group/boatramps/internal/feature"
)

// WriteFile writes fc to path as two-space indented JSON with non-ASCII text
// kept literal. The file is written to a temp file in the same directory and
// renamed over path, so a failed write leaves any existing file untouched.
func WriteFile(path string, fc *feature.Collection) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return eris.Wrapf(err, "output: create dir %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return eris.Wrap(err, "output: create temp file")
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	enc := json.NewEncoder(tmp)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fc); err != nil {
		_ = tmp.Close()
		return eris.Wrap(err, "output: encode collection")
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return eris.Wrap(err, "output: sync temp file")
	}
	if err := tmp.Close(); err != nil {
		return eris.Wrap(err, "output: close temp file")
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return eris.Wrap(err, "output: chmod temp file")
	}
	if err := os.Rename(tmpName, path); err != nil {
		return eris.Wrapf(err, "output: rename to %s", path)
	}
	committed = true
	return nil
}

// ReadFile loads a collection previously written by WriteFile.
func ReadFile(path string) (*feature.Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "output: read %s", path)
	}
	var fc feature.Collection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, eris.Wrapf(err, "output: parse %s", path)
	}
	return &fc, nil
}
