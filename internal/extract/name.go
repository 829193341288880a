package extract

import (
	"regexp"
	"strings"
)

// Name resolution tries an ordered list of textual strategies against the
// full document text and falls back to a filename-derived guess. Each
// strategy is independent; the first plausible match wins and the winner is
// normalized the same way regardless of which strategy fired.

// labeledNamePatterns match the explicit "Index Variant:" field. These are
// the highest-confidence source and are always tried first.
var labeledNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Index\s+Variant:\s*(Nifty[^\n]{0,100}?)(?:\s+Total\s+Returns\s+Index|Total\s+Returns|Index)`),
	// Line-aware anchor: the labeled value often ends at the line break,
	// not at the end of the document
	regexp.MustCompile(`(?im)Index\s+Variant:\s*(Nifty[^\n]{0,100}?)(?:\.|$)`),
}

// fallbackNamePatterns are tried in order when no labeled field exists.
// More specific phrasings come first; template versions differ in
// punctuation and spacing, hence the dedicated variants.
var fallbackNamePatterns = []*regexp.Regexp{
	// Quoted name followed by "Index" (straight or curly quotes)
	regexp.MustCompile(`(?i)['` + "‘’“”" + `"](Nifty[^'` + "‘’“”" + `"]{0,60}?)['` + "‘’“”" + `"]\s+Index`),
	// "The <name> index includes/which/is/aims/represents ..."
	regexp.MustCompile(`(?i)The\s+(Nifty\S+(?:\s+[A-Za-z0-9\-]+){0,10})\s+index\s+(?:includes|which|is|aims|represents)`),
	// Low-Volatility variants carry hyphens that break the generic patterns
	regexp.MustCompile(`(?i)(Nifty\s+(?:Alpha\s+)?(?:Quality\s+)?(?:Value\s+)?Low-Volatility\s+30)\s+Index\s+(?:is|which|aims)`),
	regexp.MustCompile(`(?i)(Nifty\S+(?:\s+[A-Za-z0-9\-]+){0,10})\s+index\s+aims`),
	// "The <name> Index" with known category words pinned first
	regexp.MustCompile(`(?i)The\s+(Nifty\s+(?:LargeMidcap|Midcap|Microcap|Smallcap|Alpha|Healthcare|High\s+Beta|Low\s+Volatility|Quality|50\s+Arbitrage)[^\n]{0,50}?)(?:\s+Index|\s+Total\s+Returns|\s+reflects)`),
	regexp.MustCompile(`(?i)The\s+(Nifty[^\n]{0,80}?)(?:\s+Index|\s+Total\s+Returns|\s+reflects)`),
	regexp.MustCompile(`(?i)(Nifty\s+[A-Za-z0-9\s\-]{0,50}?)\s+Index`),
	regexp.MustCompile(`(?i)(Nifty\s+Next\s+50)`),
	regexp.MustCompile(`(?i)(Nifty\s+50)`),
}

var (
	trailingTotalReturnsIndexRE = regexp.MustCompile(`(?i)\s+Total\s+Returns\s+Index\.?\s*$`)
	trailingTotalReturnsRE      = regexp.MustCompile(`(?i)\s+Total\s+Returns\.?\s*$`)
	trailingIndexRE             = regexp.MustCompile(`(?i)\s+Index\.?\s*$`)
	digitRunRE                  = regexp.MustCompile(`(\d+)`)
	filenamePrefixIndRE         = regexp.MustCompile(`(?i)^ind_`)
	filenamePrefixFactsheetRE   = regexp.MustCompile(`(?i)^factsheet_`)
)

// defaultExpansions restores abbreviations used in filenames and compressed
// table labels. The table is configuration data; callers can extend or
// override it (see config.LoadExpansions). It is not exhaustive.
var defaultExpansions = map[string]string{
	"div opp":  "Dividend Opportunities",
	"div opps": "Dividend Opportunities",
	"fin serv": "Financial Services",
	"mnc":      "MNC",
}

// expansion is one precompiled abbreviation rewrite.
type expansion struct {
	re          *regexp.Regexp
	replacement string
}

// NameResolver resolves an index display name from document text, falling
// back to the source filename.
type NameResolver struct {
	expansions []expansion
}

// NewNameResolver creates a resolver with the built-in expansion table
// merged with the provided overrides (overrides win on key collision).
func NewNameResolver(overrides map[string]string) *NameResolver {
	merged := make(map[string]string, len(defaultExpansions)+len(overrides))
	for k, v := range defaultExpansions {
		merged[strings.ToLower(k)] = v
	}
	for k, v := range overrides {
		merged[strings.ToLower(k)] = v
	}

	r := &NameResolver{}
	for k, v := range merged {
		r.expansions = append(r.expansions, expansion{
			re:          regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(k) + `\b`),
			replacement: v,
		})
	}
	return r
}

// Resolve returns the best-guess index display name for a document. The
// filename fallback practically always succeeds, so "" only occurs when the
// filename itself is empty.
func (r *NameResolver) Resolve(text, filename string) string {
	if name := r.resolveLabeled(text); name != "" {
		return name
	}
	if name := r.resolveFromText(text); name != "" {
		return name
	}
	return r.resolveFromFilename(filename)
}

// resolveLabeled handles the explicit "Index Variant:" field.
func (r *NameResolver) resolveLabeled(text string) string {
	for _, pattern := range labeledNamePatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		name := strings.TrimSpace(match[1])
		name = trailingTotalReturnsIndexRE.ReplaceAllString(name, "")
		name = trailingTotalReturnsRE.ReplaceAllString(name, "")
		name = trailingIndexRE.ReplaceAllString(name, "")
		if name = r.normalize(name); name != "" {
			return name
		}
	}
	return ""
}

// resolveFromText applies the descriptive-sentence and variant patterns.
func (r *NameResolver) resolveFromText(text string) string {
	for _, pattern := range fallbackNamePatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		name := strings.TrimSpace(match[1])
		name = trailingIndexRE.ReplaceAllString(name, "")
		name = r.normalize(name)
		// Reject spans that straddle two index mentions, e.g.
		// "Nifty 100 and the Nifty Midcap 150"
		if name == "" || len(name) <= 5 || strings.Contains(strings.ToLower(name), "and the") {
			continue
		}
		return name
	}
	return ""
}

// resolveFromFilename derives a readable name from the PDF filename.
func (r *NameResolver) resolveFromFilename(filename string) string {
	name := strings.TrimSuffix(filename, ".pdf")
	name = strings.TrimSuffix(name, ".PDF")
	name = filenamePrefixIndRE.ReplaceAllString(name, "Nifty ")
	name = filenamePrefixFactsheetRE.ReplaceAllString(name, "")
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	name = digitRunRE.ReplaceAllString(name, " $1")
	return r.normalize(name)
}

// normalize applies the uniform post-match cleanup: whitespace collapse,
// trailing punctuation strip, abbreviation expansion.
func (r *NameResolver) normalize(name string) string {
	name = NormalizeSpace(name)
	name = strings.TrimRight(name, ".,:;-")
	name = strings.TrimSpace(name)
	for _, exp := range r.expansions {
		name = exp.re.ReplaceAllString(name, exp.replacement)
	}
	return NormalizeSpace(name)
}
