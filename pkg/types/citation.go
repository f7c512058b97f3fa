// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the citation records and configuration shared
// across the citescan stages.
package types

// CitationType labels which citation family a match belongs to. The set
// is closed: the extractor never reports a label outside this list.
type CitationType string

const (
	// CiteFullCase is a complete reporter reference (volume, reporter,
	// page), e.g. "531 U.S. 98".
	CiteFullCase CitationType = "FullCaseCitation"

	// CiteShortCase is a short-form reporter reference, e.g. "531 U.S. at 103".
	CiteShortCase CitationType = "ShortCaseCitation"

	// CiteID is an "Id." reference to the immediately preceding authority.
	CiteID CitationType = "IdCitation"

	// CiteSupra is a "supra" reference back to an earlier full citation.
	CiteSupra CitationType = "SupraCitation"

	// CiteFullLaw is a statutory or regulatory reference, e.g. "42 U.S.C. § 1983".
	CiteFullLaw CitationType = "FullLawCitation"

	// CiteFullJournal is a law journal reference, e.g. "114 Harv. L. Rev. 1390".
	CiteFullJournal CitationType = "FullJournalCitation"
)

// CitationTypes lists every label the extractor can report, in no
// particular order. Used to validate --type filters.
var CitationTypes = []CitationType{
	CiteFullCase,
	CiteShortCase,
	CiteID,
	CiteSupra,
	CiteFullLaw,
	CiteFullJournal,
}

// ValidCitationType reports whether label is a known citation type.
func ValidCitationType(label string) bool {
	for _, t := range CitationTypes {
		if string(t) == label {
			return true
		}
	}
	return false
}

// Citation locates one recognized citation within the scanned text.
// Offsets are byte offsets into the input, so Text == input[Start:End].
type Citation struct {
	// Text is the matched substring of the input.
	Text string `json:"text" yaml:"text"`

	// Start is the inclusive byte offset where the match begins.
	Start int `json:"start" yaml:"start"`

	// End is the exclusive byte offset where the match ends.
	End int `json:"end" yaml:"end"`

	// Type is the citation family that matched.
	Type CitationType `json:"type" yaml:"type"`
}

// Document is the output shape written to stdout: every citation found
// in one input text, in document order.
type Document struct {
	Citations []Citation `json:"citations" yaml:"citations"`
}

// NewDocument wraps citations in a Document. A nil slice becomes an
// empty one so the citations field serializes as [] rather than null.
func NewDocument(citations []Citation) Document {
	if citations == nil {
		citations = []Citation{}
	}
	return Document{Citations: citations}
}
