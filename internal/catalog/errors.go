// VibeMatch - Audio Feature Music Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibematch

package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDataLoad indicates the source could not be read or parsed as tabular data.
	ErrDataLoad = errors.New("catalog: data load failed")

	// ErrSchema indicates required feature columns are absent from the source.
	ErrSchema = errors.New("catalog: schema mismatch")

	// ErrEmptyCatalog indicates no rows survived cleaning.
	ErrEmptyCatalog = errors.New("catalog: no complete rows")

	// ErrDimensionMismatch indicates a vector width differs from the fitted
	// feature count. The model layer returns the same value.
	ErrDimensionMismatch = errors.New("dimension mismatch")
)

// LoadError describes a failure to read or parse a catalog source.
type LoadError struct {
	Source string
	Err    error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("load catalog %s: %v", e.Source, e.Err)
}

// Unwrap exposes both ErrDataLoad and the underlying cause.
func (e *LoadError) Unwrap() []error {
	return []error{ErrDataLoad, e.Err}
}

// SchemaError lists feature columns that were requested but not found.
type SchemaError struct {
	Missing []string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	return fmt.Sprintf("catalog: missing feature columns: %s", strings.Join(e.Missing, ", "))
}

// Unwrap allows errors.Is(err, ErrSchema).
func (e *SchemaError) Unwrap() error {
	return ErrSchema
}

func loadError(source string, format string, args ...interface{}) error {
	return &LoadError{Source: source, Err: fmt.Errorf(format, args...)}
}
