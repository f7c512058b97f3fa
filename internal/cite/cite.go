// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cite recognizes legal citations in free text. It scans for
// six citation families (full and short-form case citations, Id. and
// supra references, statutory citations, and journal citations) using
// the abbreviation tables from internal/reporters, and reports each
// match with its byte span in the original text.
package cite

import (
	"regexp"
	"sort"

	"github.com/pdiddy/citescan/internal/reporters"
	"github.com/pdiddy/citescan/pkg/types"
)

// pincite matches a page or page range, e.g. "103" or "103-04".
const pincite = `\d{1,5}(?:[-–]\d{1,5})?`

// Extractor scans text for citations. Construct with New; an Extractor
// is immutable after construction and safe for concurrent use.
type Extractor struct {
	patterns []pattern
}

// pattern pairs one citation family with its compiled regex. Rank
// breaks ties between candidates with identical spans: lower wins.
type pattern struct {
	typ  types.CitationType
	re   *regexp.Regexp
	rank int
}

// New builds an Extractor over the given abbreviation table. A nil
// table uses the embedded default. Families listed in cfg.DisabledTypes
// are not scanned for.
func New(table *reporters.Table, cfg types.ExtractConfig) *Extractor {
	if table == nil {
		table = reporters.Default()
	}

	rep := table.ReporterAlternation()
	law := table.LawAlternation()
	jr := table.JournalAlternation()

	all := []pattern{
		{
			// volume REPORTER page, with optional attached pincites:
			// "531 U.S. 98" or "531 U.S. 98, 103-04". The page bound
			// allows up to 8 digits for Westlaw document numbers.
			typ:  types.CiteFullCase,
			re:   regexp.MustCompile(`\b(\d{1,4})\s+` + rep + `\s+(\d{1,8})((?:,\s*` + pincite + `)*)`),
			rank: 0,
		},
		{
			// title CODE § section: "42 U.S.C. § 1983(b)" or "124 Stat. 119".
			// The section token may contain dots and dashes but must end
			// on a word character, so a sentence-final period stays
			// outside the span.
			typ:  types.CiteFullLaw,
			re:   regexp.MustCompile(`\b(\d{1,4})\s+` + law + `(?:\s*§§?\s*|\s+)(\d(?:[\w.\-]*\w)?(?:\(\w+\))*)`),
			rank: 1,
		},
		{
			// volume JOURNAL page: "114 Harv. L. Rev. 1390, 1402".
			typ:  types.CiteFullJournal,
			re:   regexp.MustCompile(`\b(\d{1,4})\s+` + jr + `\s+(\d{1,5})(?:,\s*` + pincite + `)?`),
			rank: 2,
		},
		{
			// volume REPORTER at page: "531 U.S. at 103".
			typ:  types.CiteShortCase,
			re:   regexp.MustCompile(`\b(\d{1,4})\s+` + rep + `\s+at\s+(` + pincite + `)`),
			rank: 3,
		},
		{
			// antecedent, supra [note N] [at page]: "Gore, supra note 3, at 100".
			typ:  types.CiteSupra,
			re:   regexp.MustCompile(`\b([A-Z][A-Za-z'.\-]*),?\s+supra(?:,?\s+note\s+\d+)?(?:,?\s+at\s+` + pincite + `)?`),
			rank: 4,
		},
		{
			// Id. [at page]: "Id." or "id. at 557".
			typ:  types.CiteID,
			re:   regexp.MustCompile(`\b[Ii]d\.(?:\s+at\s+` + pincite + `)?`),
			rank: 5,
		},
	}

	var active []pattern
	for _, p := range all {
		if !cfg.Disabled(p.typ) {
			active = append(active, p)
		}
	}

	return &Extractor{patterns: active}
}

// candidate is a raw regex match before overlap resolution.
type candidate struct {
	start, end int
	typ        types.CitationType
	rank       int
}

// Extract scans text and returns every recognized citation in document
// order. Spans are byte offsets into text and never overlap: when two
// candidates compete for the same region, the earlier start wins, and
// on equal starts the longer match wins (so a full citation beats any
// fragment of itself).
func (e *Extractor) Extract(text string) []types.Citation {
	if text == "" {
		return nil
	}

	var cands []candidate
	for _, p := range e.patterns {
		for _, loc := range p.re.FindAllStringIndex(text, -1) {
			cands = append(cands, candidate{
				start: loc[0],
				end:   loc[1],
				typ:   p.typ,
				rank:  p.rank,
			})
		}
	}
	if len(cands) == 0 {
		return nil
	}

	sort.Slice(cands, func(i, j int) bool {
		if cands[i].start != cands[j].start {
			return cands[i].start < cands[j].start
		}
		if cands[i].end != cands[j].end {
			return cands[i].end > cands[j].end
		}
		return cands[i].rank < cands[j].rank
	})

	var citations []types.Citation
	lastEnd := -1
	for _, c := range cands {
		if c.start < lastEnd {
			continue
		}
		citations = append(citations, types.Citation{
			Text:  text[c.start:c.end],
			Start: c.start,
			End:   c.end,
			Type:  c.typ,
		})
		lastEnd = c.end
	}

	return citations
}
