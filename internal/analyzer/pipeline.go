// Copyright Lease Lens contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package analyzer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"lease-lens/internal/extract"
	"lease-lens/internal/render"
)

// RunFile analyzes the document at path end to end and writes a highlighted
// PDF to outputPath. Non-PDF inputs are laid onto a generated PDF first so
// highlighting works uniformly across formats.
func (a *Analyzer) RunFile(ctx context.Context, path, outputPath string) (*Result, HighlightStats, error) {
	text, ext, err := extract.Extract(path)
	if err != nil {
		return nil, nil, fmt.Errorf("analyzer: extracting %s: %w", path, err)
	}

	result, err := a.Analyze(ctx, text)
	if err != nil {
		return nil, nil, err
	}

	doc, cleanup, err := a.openForHighlighting(path, ext, text)
	if err != nil {
		return result, nil, err
	}
	defer cleanup()
	defer doc.Close()

	stats, err := a.HighlightDocument(doc, result, outputPath)
	if err != nil {
		return result, stats, err
	}
	return result, stats, nil
}

// openForHighlighting returns a highlightable document for the input. PDFs
// open directly; other formats get a layout PDF generated next to the output.
func (a *Analyzer) openForHighlighting(path, ext, text string) (render.Document, func(), error) {
	if ext == ".pdf" {
		doc, err := render.OpenPDF(path, a.observer)
		if err != nil {
			return nil, nil, err
		}
		return doc, func() {}, nil
	}

	layoutPath := filepath.Join(os.TempDir(),
		strings.TrimSuffix(filepath.Base(path), ext)+"_layout.pdf")
	if err := render.BuildTextPDF(text, layoutPath); err != nil {
		return nil, nil, fmt.Errorf("analyzer: building layout pdf: %w", err)
	}

	doc, err := render.OpenPDF(layoutPath, a.observer)
	if err != nil {
		os.Remove(layoutPath)
		return nil, nil, err
	}
	return doc, func() { os.Remove(layoutPath) }, nil
}
