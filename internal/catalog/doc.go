// Package catalog defines the format-agnostic seed catalog for the roster,
// together with the Decoder and Loader interfaces used to read it from disk
// and the Seed function that applies it to a registry.
//
// The catalog Model is the single input to Seed. Concrete decoders, such as
// the HCL and YAML ones, live in separate packages and only need to turn one
// file into a Model.
package catalog
