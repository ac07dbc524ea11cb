// Package hcl provides the HCL implementation of catalog.Decoder. It parses
// `course`, `student` and `locals` blocks, evaluates attribute expressions
// against the file's locals and converts them into the format-agnostic
// catalog model.
package hcl
