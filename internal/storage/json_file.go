package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/2beens/fitlog/pkg"

	log "github.com/sirupsen/logrus"
)

// ReadError is returned when a backing file exists but does not hold valid JSON.
// The repositories never fall back to an empty state in that case.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %s", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// fileMode of the data files; temp files are created 0600 and would keep it
// through the rename otherwise.
const fileMode = 0644

// jsonFile is one JSON document on local disk. Every call opens and
// closes the file; nothing is held between calls.
type jsonFile struct {
	path string
}

func (f jsonFile) exists() (bool, error) {
	exists, err := pkg.PathExists(f.path, false)
	if err != nil {
		return false, fmt.Errorf("check %s: %w", f.path, err)
	}
	return exists, nil
}

// load decodes the file into v and reports false when the file is missing.
func (f jsonFile) load(v any) (bool, error) {
	log.Debugf("loading json from: %s", f.path)

	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debugf("json file %s does not exist yet", f.path)
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", f.path, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return false, &ReadError{Path: f.path, Err: err}
	}
	return true, nil
}

// save overwrites the whole file with v. The content goes to a temp file in
// the same directory first and is renamed over the target.
func (f jsonFile) save(v any) error {
	log.Debugf("saving json to: %s", f.path)

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", f.path, err)
	}

	dst, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", f.path, err)
	}
	tmpPath := dst.Name()

	if err := dst.Chmod(fileMode); err != nil {
		dst.Close()
		removeTemp(tmpPath)
		return fmt.Errorf("chmod %s: %w", tmpPath, err)
	}
	if _, err := dst.Write(data); err != nil {
		dst.Close()
		removeTemp(tmpPath)
		return fmt.Errorf("write %s: %w", tmpPath, err)
	}
	if err := dst.Close(); err != nil {
		removeTemp(tmpPath)
		return fmt.Errorf("close %s: %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, f.path); err != nil {
		removeTemp(tmpPath)
		return fmt.Errorf("replace %s: %w", f.path, err)
	}

	log.Debugf("json file %s saved", f.path)
	return nil
}

func removeTemp(path string) {
	if err := os.Remove(path); err != nil {
		log.Warnf("remove temp file %s: %s", path, err)
	}
}

func pathOrDefault(path, defaultPath string) string {
	if path == "" {
		return defaultPath
	}
	return path
}
