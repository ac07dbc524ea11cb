package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/rostergo/internal/catalog"
	"github.com/specialistvlad/rostergo/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Decoder is the HCL implementation of catalog.Decoder.
type Decoder struct {
	parser *hclparse.Parser
}

// NewDecoder creates a new HCL catalog decoder.
func NewDecoder() *Decoder {
	return &Decoder{parser: hclparse.NewParser()}
}

// Extensions implements catalog.Decoder.
func (d *Decoder) Extensions() []string {
	return []string{".hcl"}
}

// DecodeFile parses a single HCL catalog file.
func (d *Decoder) DecodeFile(ctx context.Context, path string) (*catalog.Model, error) {
	logger := ctxlog.FromContext(ctx).With("file", path)
	logger.Debug("Parsing HCL catalog file.")

	file, diags := d.parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}
	return decodeBody(ctx, file.Body, path)
}

func decodeBody(ctx context.Context, body hcl.Body, path string) (*catalog.Model, error) {
	var parsed catalogFile
	if diags := gohcl.DecodeBody(body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	evalCtx, err := buildEvalContext(parsed.Locals)
	if err != nil {
		return nil, fmt.Errorf("in %s: %w", path, err)
	}
	ctxlog.FromContext(ctx).Debug("Decoding catalog blocks.", "file", path, "courses", len(parsed.Courses), "students", len(parsed.Students))

	m := &catalog.Model{
		Courses:  make([]*catalog.Course, 0, len(parsed.Courses)),
		Students: make([]*catalog.Student, 0, len(parsed.Students)),
	}
	for _, block := range parsed.Courses {
		c, err := decodeCourse(block, evalCtx)
		if err != nil {
			return nil, fmt.Errorf("in %s, course %q: %w", path, block.Code, err)
		}
		c.Source = path
		m.Courses = append(m.Courses, c)
	}
	for _, block := range parsed.Students {
		var attrs studentAttrs
		if diags := gohcl.DecodeBody(block.Body, evalCtx, &attrs); diags.HasErrors() {
			return nil, fmt.Errorf("in %s, student %q: %w", path, block.ID, diags)
		}
		m.Students = append(m.Students, &catalog.Student{
			ID:      block.ID,
			Name:    attrs.Name,
			Courses: attrs.Courses,
			Source:  path,
		})
	}
	return m, nil
}

func decodeCourse(block *courseBlock, evalCtx *hcl.EvalContext) (*catalog.Course, error) {
	var attrs courseAttrs
	if diags := gohcl.DecodeBody(block.Body, evalCtx, &attrs); diags.HasErrors() {
		return nil, diags
	}
	capacity, err := decodeCapacity(attrs.Capacity, evalCtx)
	if err != nil {
		return nil, err
	}
	return &catalog.Course{
		Code:        block.Code,
		Title:       attrs.Title,
		Description: attrs.Description,
		Capacity:    capacity,
		Schedule:    attrs.Schedule,
	}, nil
}

// decodeCapacity evaluates the capacity expression and converts it to an int.
func decodeCapacity(expr hcl.Expression, evalCtx *hcl.EvalContext) (int, error) {
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return 0, diags
	}
	if val.IsNull() || !val.IsWhollyKnown() {
		return 0, fmt.Errorf("capacity must be set to a known value")
	}

	num, err := convert.Convert(val, cty.Number)
	if err != nil {
		return 0, fmt.Errorf("cannot convert capacity of type %s to number: %w", val.Type().FriendlyName(), err)
	}

	var capacity int
	if err := gocty.FromCtyValue(num, &capacity); err != nil {
		return 0, fmt.Errorf("capacity must be a whole number: %w", err)
	}
	return capacity, nil
}
