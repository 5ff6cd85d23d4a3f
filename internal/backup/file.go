package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	ErrFileNotFound     = errors.New("backup file not found")
	ErrInvalidExtension = errors.New("backup file must have a .json extension")
	ErrMalformedBackup  = errors.New("backup file is not valid JSON")
	ErrMissingTables    = errors.New("backup file has no tables section")
)

const Extension = ".json"

// FileName returns a fresh, sortable backup file name.
func FileName(now time.Time) string {
	return fmt.Sprintf("backup-%s-%s%s", now.UTC().Format("20060102-150405"), uuid.NewString()[:8], Extension)
}

func checkExtension(path string) error {
	if !strings.EqualFold(filepath.Ext(path), Extension) {
		return errors.Wrapf(ErrInvalidExtension, "%s", filepath.Base(path))
	}
	return nil
}

// WriteFile stores doc at path, replacing any existing file only once the
// new content is fully written.
func WriteFile(path string, doc *Document) error {
	if err := checkExtension(path); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create backup directory")
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode backup")
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrap(err, "write backup")
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(err, "write backup")
	}
	return nil
}

// ReadFile loads and checks a backup document without touching the store.
func ReadFile(path string) (*Document, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrFileNotFound, "%s", path)
		}
		return nil, errors.Wrap(err, "stat backup")
	}
	if err := checkExtension(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read backup")
	}
	return Decode(data)
}

// Decode parses a backup document from raw JSON.
func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(ErrMalformedBackup, "%v", err)
	}
	if doc.Tables == nil {
		return nil, ErrMissingTables
	}
	return &doc, nil
}
