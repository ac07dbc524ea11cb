package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// buildEvalContext evaluates every `locals` block and exposes the results as
// the `local` object. Locals are evaluated without variables, so a local may
// not reference another local.
func buildEvalContext(blocks []*localsBlock) (*hcl.EvalContext, error) {
	values := make(map[string]cty.Value)
	for _, block := range blocks {
		attrs, diags := block.Body.JustAttributes()
		if diags.HasErrors() {
			return nil, fmt.Errorf("invalid locals block: %w", diags)
		}
		for name, attr := range attrs {
			if _, exists := values[name]; exists {
				return nil, fmt.Errorf("local %q is defined more than once", name)
			}
			val, diags := attr.Expr.Value(nil)
			if diags.HasErrors() {
				return nil, fmt.Errorf("invalid value for local %q: %w", name, diags)
			}
			values[name] = val
		}
	}

	local := cty.EmptyObjectVal
	if len(values) > 0 {
		local = cty.ObjectVal(values)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"local": local},
	}, nil
}
