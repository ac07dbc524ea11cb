package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/rostergo/internal/ctxlog"
	"github.com/specialistvlad/rostergo/internal/fsutil"
)

// FileLoader discovers catalog files and dispatches each one to the decoder
// registered for its extension.
type FileLoader struct {
	decoders   map[string]Decoder
	extensions []string
}

// NewLoader creates a FileLoader from the given decoders. A later decoder
// wins when two claim the same extension.
func NewLoader(decoders ...Decoder) *FileLoader {
	l := &FileLoader{decoders: make(map[string]Decoder)}
	for _, d := range decoders {
		for _, ext := range d.Extensions() {
			if _, seen := l.decoders[ext]; !seen {
				l.extensions = append(l.extensions, ext)
			}
			l.decoders[ext] = d
		}
	}
	return l
}

// Load decodes every supported file under paths and merges them in order.
func (l *FileLoader) Load(ctx context.Context, paths ...string) (*Model, error) {
	logger := ctxlog.FromContext(ctx)
	if len(l.decoders) == 0 {
		return nil, fmt.Errorf("no catalog decoders registered")
	}

	merged := &Model{}
	for _, path := range paths {
		files, err := fsutil.FindFilesByExtension(path, l.extensions...)
		if err != nil {
			return nil, fmt.Errorf("failed to find catalog files in %s: %w", path, err)
		}
		if len(files) == 0 {
			logger.Warn("No catalog files found in path.", "path", path)
			continue
		}

		for _, file := range files {
			decoder := l.decoders[strings.ToLower(filepath.Ext(file))]
			m, err := decoder.DecodeFile(ctx, file)
			if err != nil {
				return nil, err
			}
			if m.Empty() {
				logger.Warn("Catalog file declares nothing.", "file", file)
				continue
			}
			logger.Debug("Catalog file decoded.", "file", file, "courses", len(m.Courses), "students", len(m.Students))
			merged.Merge(m)
		}
	}
	return merged, nil
}
