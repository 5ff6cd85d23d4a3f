package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Sink receives finished documents.
type Sink interface {
	Write(ctx context.Context, doc *Document) (string, error)
}

// DirSink drops each document as a JSON file into Dir, where the renderer
// picks it up.
type DirSink struct {
	Dir string
}

func (s DirSink) Write(_ context.Context, doc *Document) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}

	name := fmt.Sprintf("%s-%s.json", doc.Event.EventNo, uuid.NewString()[:8])
	path := filepath.Join(s.Dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("write document: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("write document: %w", err)
	}
	return path, nil
}
