// Package config defines the format-agnostic configuration model for a grid
// run. A config.Loader implementation (see internal/hcl) translates on-disk
// configuration into a Model; everything downstream of loading works only
// with the Model, never with the source format.
package config
