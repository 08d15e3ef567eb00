// Copyright 2026 © The Atelier Authors
// SPDX-License-Identifier: Apache-2.0

// Package vision defines the image-analysis collaborator contract. The
// color/feature extraction algorithm lives behind this interface; the
// assistant core only calls it.
package vision

import "context"

// Color is one dominant color extracted from an image.
type Color struct {
	Hex        string  `json:"hex"`
	Proportion float64 `json:"proportion,omitempty"`
}

// Analysis is the structured description of an analyzed image. A failed
// analysis is reported through the Error field, never as a Go error: the
// contract is that analysis never throws.
type Analysis struct {
	Colors   []Color  `json:"colors,omitempty"`
	Features []string `json:"features,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// Failed reports whether the analysis carries an error marker.
func (a Analysis) Failed() bool {
	return a.Error != ""
}

// Analyzer analyzes an image by URL.
type Analyzer interface {
	// AnalyzeImage returns a structured description of the image, or an
	// Analysis with the Error field set. It never returns a Go error.
	AnalyzeImage(ctx context.Context, imageURL string) Analysis
}

// Initializer is implemented by analyzers that need their own startup step.
type Initializer interface {
	Init(ctx context.Context) error
}
