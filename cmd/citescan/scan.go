// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pdiddy/citescan/internal/cite"
	"github.com/pdiddy/citescan/internal/reporters"
	"github.com/pdiddy/citescan/pkg/types"
)

// runScan is the filter behavior behind the bare command: drain r,
// extract citations, and write one pretty-printed JSON document to w.
// Empty input short-circuits to the empty document without touching
// the extractor.
func runScan(r io.Reader, w io.Writer) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	text := string(data)

	var doc types.Document
	if text == "" {
		doc = types.NewDocument(nil)
	} else {
		ex := cite.New(reporters.Default(), extractConfig())
		doc = types.NewDocument(ex.Extract(text))
	}

	return writeDocument(w, doc)
}

// writeDocument emits the citations document with 2-space indentation.
func writeDocument(w io.Writer, doc types.Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
