package catalog

import "context"

// Decoder is the interface for a format-specific catalog file decoder.
type Decoder interface {
	// Extensions lists the lower-case file extensions, dot included, that
	// this decoder handles.
	Extensions() []string

	// DecodeFile reads a single file and returns its declarations with
	// Source set to path.
	DecodeFile(ctx context.Context, path string) (*Model, error)
}

// Loader reads catalog files from one or more paths into a single Model.
type Loader interface {
	Load(ctx context.Context, paths ...string) (*Model, error)
}
