// pkg/resolver/resolver.go
package resolver

import (
	"regexp"
	"strings"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

// Resolution is the outcome of a client lookup. Matched false means
// every layer declined; the caller falls back to stub-client creation.
// Denied marks an explicit no-match entry from the dropdown table,
// which also stops later, less reliable layers from guessing.
type Resolution struct {
	ClientID string
	Matched  bool
	Denied   bool
	Layer    int
}

// Resolver maps free-text client descriptions to canonical client ids
// through an ordered fallback chain. Later layers are strictly less
// reliable, so a confident earlier match always wins.
type Resolver struct {
	names     map[string]string
	dropdowns map[string]string
	titles    map[string]string
	logger    *zap.Logger
}

// New creates a Resolver backed by the built-in alias tables.
func New(logger *zap.Logger) *Resolver {
	return &Resolver{
		names:     nameAliases,
		dropdowns: dropdownAliases,
		titles:    titleAliases,
		logger:    logger,
	}
}

// Resolve tries, in fixed priority order:
//
//  1. direct name lookup of the dropdown value
//  2. exact dropdown-string lookup (may deny explicitly)
//  3. first " - " segment of the dropdown value against the name table
//  4. cleaned task title against the historical table, then the name table
func (r *Resolver) Resolve(dropdown, title string) Resolution {
	// Layer 1: direct name lookup.
	if id, ok := r.names[Canon(dropdown)]; ok {
		return r.matched(id, 1, dropdown, title)
	}

	// Layer 2: exact dropdown-value lookup. An empty id is a
	// deliberate no-match for a historical client.
	if id, ok := r.dropdowns[Canon(dropdown)]; ok {
		if id == "" {
			r.trace("client resolution denied", dropdown, title, "")
			return Resolution{Denied: true, Layer: 2}
		}
		return r.matched(id, 2, dropdown, title)
	}

	// Layer 3: retry the name table with the dropdown's first segment.
	if first, _, found := strings.Cut(dropdown, " - "); found {
		if id, ok := r.names[Canon(first)]; ok {
			return r.matched(id, 3, dropdown, title)
		}
	}

	// Layer 4: clean the task title down to a candidate client phrase.
	phrase := CleanTitle(title)
	if id, ok := r.titles[Canon(phrase)]; ok {
		return r.matched(id, 4, dropdown, title)
	}
	if id, ok := r.names[Canon(phrase)]; ok {
		return r.matched(id, 4, dropdown, title)
	}

	r.trace("client unresolved", dropdown, title, "")
	return Resolution{}
}

func (r *Resolver) matched(id string, layer int, dropdown, title string) Resolution {
	r.trace("client resolved", dropdown, title, id)
	return Resolution{ClientID: id, Matched: true, Layer: layer}
}

func (r *Resolver) trace(msg, dropdown, title, id string) {
	if r.logger == nil {
		return
	}
	r.logger.Debug(msg,
		zap.String("dropdown", dropdown),
		zap.String("title", title),
		zap.String("clientId", id))
}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	nonSlugRe    = regexp.MustCompile(`[^a-z0-9]+`)

	monthYearRe = regexp.MustCompile(`(?i)\s*[-–—]?\s*(?:january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sept|sep|oct|nov|dec)\.?,?\s+\d{4}\s*$`)
	bareYearRe  = regexp.MustCompile(`\s*[-–—]?\s*\d{4}\s*$`)
	halfMonthRe = regexp.MustCompile(`\s*[-–—(]*\s*[12]\s*/\s*2\s*\)?\s*$`)
	extraRe     = regexp.MustCompile(`(?i)\s*[-–—]?\s*extra\b.*$`)
	techWorkRe  = regexp.MustCompile(`(?i)\s*[-–—]?\s*tech work\b.*$`)
	trailingRe  = regexp.MustCompile(`[\s\-–—,]+$`)
)

// CleanTitle strips the fixed set of trailing period markers from a
// task title, leaving the candidate client phrase. "CaseEngine - July
// 2024" becomes "CaseEngine". Runs until no pattern applies, since
// titles stack markers ("Northwind HVAC - Extra - July 2024 1/2").
func CleanTitle(title string) string {
	s := strings.TrimSpace(title)
	for {
		prev := s
		s = halfMonthRe.ReplaceAllString(s, "")
		s = monthYearRe.ReplaceAllString(s, "")
		s = bareYearRe.ReplaceAllString(s, "")
		s = extraRe.ReplaceAllString(s, "")
		s = techWorkRe.ReplaceAllString(s, "")
		s = trailingRe.ReplaceAllString(s, "")
		if s == prev {
			return s
		}
	}
}

// Canon normalizes a free-text key for table lookup: lowercase, trim,
// strip diacritics, collapse whitespace. Punctuation is preserved so
// variants like "joel/isaac" stay distinct table keys.
func Canon(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = stripDiacritics(s)
	return whitespaceRe.ReplaceAllString(s, " ")
}

// Slug derives the deterministic id fragment used for unknown-client
// placeholders: lowercase alphanumerics joined by single dashes.
func Slug(s string) string {
	s = stripDiacritics(strings.ToLower(strings.TrimSpace(s)))
	s = nonSlugRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// stripDiacritics decomposes to NFD and drops combining marks, so
// "Café" keys the same as "Cafe".
func stripDiacritics(s string) string {
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
