// Package config defines the format-agnostic run-specification model for
// the application, along with the Loader interface for reading it from a
// concrete source.
//
// The RunSpec is the single source of truth for the pipeline package.
// Concrete loaders, such as the HCL one, live in separate packages.
package config
