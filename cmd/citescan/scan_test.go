// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/pdiddy/citescan/pkg/types"
)

func scan(t *testing.T, input string) string {
	t.Helper()
	var out bytes.Buffer
	if err := runScan(strings.NewReader(input), &out); err != nil {
		t.Fatalf("runScan(%q) failed: %v", input, err)
	}
	return out.String()
}

func decode(t *testing.T, output string) types.Document {
	t.Helper()
	var doc types.Document
	if err := json.Unmarshal([]byte(output), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, output)
	}
	return doc
}

func TestRunScanEmptyInput(t *testing.T) {
	got := scan(t, "")
	want := "{\n  \"citations\": []\n}\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestRunScanNoCitations(t *testing.T) {
	got := scan(t, "The quick brown fox jumps over the lazy dog.")
	want := "{\n  \"citations\": []\n}\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestRunScanFullCaseCitation(t *testing.T) {
	input := "See Bush v. Gore, 531 U.S. 98 (2000)."
	doc := decode(t, scan(t, input))

	if len(doc.Citations) != 1 {
		t.Fatalf("got %d citations, want 1: %+v", len(doc.Citations), doc.Citations)
	}

	c := doc.Citations[0]
	if c.Text != "531 U.S. 98" {
		t.Errorf("Text = %q, want %q", c.Text, "531 U.S. 98")
	}
	if c.Type != types.CiteFullCase {
		t.Errorf("Type = %q, want %q", c.Type, types.CiteFullCase)
	}
	if c.Text != input[c.Start:c.End] {
		t.Errorf("Text = %q, input[%d:%d] = %q", c.Text, c.Start, c.End, input[c.Start:c.End])
	}
}

func TestRunScanTwoCitationsInOrder(t *testing.T) {
	input := "Compare 410 U.S. 113 (1973) with the statute, 42 U.S.C. § 1983, below."
	doc := decode(t, scan(t, input))

	if len(doc.Citations) != 2 {
		t.Fatalf("got %d citations, want 2: %+v", len(doc.Citations), doc.Citations)
	}

	first, second := doc.Citations[0], doc.Citations[1]
	if first.End > second.Start {
		t.Errorf("spans overlap: [%d,%d) then [%d,%d)", first.Start, first.End, second.Start, second.End)
	}
	for _, c := range doc.Citations {
		if c.Start < 0 || c.End <= c.Start || c.End > len(input) {
			t.Errorf("invalid span [%d,%d) for input of length %d", c.Start, c.End, len(input))
		}
		if c.Text != input[c.Start:c.End] {
			t.Errorf("Text = %q, input[%d:%d] = %q", c.Text, c.Start, c.End, input[c.Start:c.End])
		}
	}
}

func TestRunScanIdempotent(t *testing.T) {
	input := "Roe v. Wade, 410 U.S. 113, 120 (1973); id. at 153; 42 U.S.C. § 1983."

	first := scan(t, input)
	second := scan(t, input)

	if first != second {
		t.Errorf("runs differ:\n%s\nvs\n%s", first, second)
	}
}
