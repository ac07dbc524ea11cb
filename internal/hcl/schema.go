package hcl

import "github.com/hashicorp/hcl/v2"

// catalogFile is the top-level structure of a catalog file. Block bodies are
// kept raw so they can be decoded once the locals are known.
type catalogFile struct {
	Locals   []*localsBlock  `hcl:"locals,block"`
	Courses  []*courseBlock  `hcl:"course,block"`
	Students []*studentBlock `hcl:"student,block"`
}

// localsBlock holds `name = expression` pairs exposed as `local.<name>`.
type localsBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// courseBlock is a `course "CODE" { ... }` block.
type courseBlock struct {
	Code string   `hcl:"code,label"`
	Body hcl.Body `hcl:",remain"`
}

// courseAttrs is the content of a course block.
type courseAttrs struct {
	Title       string         `hcl:"title,optional"`
	Description string         `hcl:"description,optional"`
	Capacity    hcl.Expression `hcl:"capacity"`
	Schedule    string         `hcl:"schedule,optional"`
}

// studentBlock is a `student "ID" { ... }` block.
type studentBlock struct {
	ID   string   `hcl:"id,label"`
	Body hcl.Body `hcl:",remain"`
}

// studentAttrs is the content of a student block.
type studentAttrs struct {
	Name    string   `hcl:"name,optional"`
	Courses []string `hcl:"courses,optional"`
}
