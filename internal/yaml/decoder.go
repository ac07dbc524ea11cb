// Package yaml provides the YAML implementation of catalog.Decoder.
package yaml

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/specialistvlad/rostergo/internal/catalog"
	"github.com/specialistvlad/rostergo/internal/ctxlog"
	yamlv3 "gopkg.in/yaml.v3"
)

// catalogFile mirrors the YAML document layout.
type catalogFile struct {
	Courses []struct {
		Code        string `yaml:"code"`
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
		Capacity    int    `yaml:"capacity"`
		Schedule    string `yaml:"schedule"`
	} `yaml:"courses"`
	Students []struct {
		ID      string   `yaml:"id"`
		Name    string   `yaml:"name"`
		Courses []string `yaml:"courses"`
	} `yaml:"students"`
}

// Decoder is the YAML implementation of catalog.Decoder.
type Decoder struct{}

// NewDecoder creates a new YAML catalog decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Extensions implements catalog.Decoder.
func (d *Decoder) Extensions() []string {
	return []string{".yaml", ".yml"}
}

// DecodeFile reads a single YAML catalog file. Unknown keys are rejected.
func (d *Decoder) DecodeFile(ctx context.Context, path string) (*catalog.Model, error) {
	ctxlog.FromContext(ctx).Debug("Parsing YAML catalog file.", "file", path)

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var parsed catalogFile
	dec := yamlv3.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&parsed); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", path, err)
	}

	m := &catalog.Model{
		Courses:  make([]*catalog.Course, 0, len(parsed.Courses)),
		Students: make([]*catalog.Student, 0, len(parsed.Students)),
	}
	for _, c := range parsed.Courses {
		m.Courses = append(m.Courses, &catalog.Course{
			Code:        c.Code,
			Title:       c.Title,
			Description: c.Description,
			Capacity:    c.Capacity,
			Schedule:    c.Schedule,
			Source:      path,
		})
	}
	for _, s := range parsed.Students {
		m.Students = append(m.Students, &catalog.Student{
			ID:      s.ID,
			Name:    s.Name,
			Courses: s.Courses,
			Source:  path,
		})
	}
	return m, nil
}
