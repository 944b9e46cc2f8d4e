package htmlutil

import (
	"strings"
	"unicode"
)

// SrcsetEntry is one candidate of a srcset attribute.
type SrcsetEntry struct {
	URL string
	// Descriptor is the density or width descriptor, "" when omitted.
	Descriptor string
}

// ParseSrcset splits a srcset attribute into its candidates. A url runs up to
// the first whitespace, so commas inside urls survive; a comma ending the url
// or the descriptor separates candidates.
func ParseSrcset(attr string) []SrcsetEntry {
	var entries []SrcsetEntry
	rest := attr
	for {
		rest = strings.TrimLeftFunc(rest, func(r rune) bool {
			return unicode.IsSpace(r) || r == ','
		})
		if rest == "" {
			return entries
		}

		end := strings.IndexFunc(rest, unicode.IsSpace)
		if end < 0 {
			end = len(rest)
		}
		url := rest[:end]
		rest = rest[end:]

		entry := SrcsetEntry{URL: strings.TrimRight(url, ",")}
		if !strings.HasSuffix(url, ",") {
			descriptor := rest
			if comma := strings.IndexByte(rest, ','); comma >= 0 {
				descriptor = rest[:comma]
				rest = rest[comma+1:]
			} else {
				rest = ""
			}
			entry.Descriptor = strings.TrimSpace(descriptor)
		}
		if entry.URL != "" {
			entries = append(entries, entry)
		}
	}
}

// PickStandard returns the url of the first candidate that is not the 2x
// density variant.
func PickStandard(attr string) (string, bool) {
	for _, entry := range ParseSrcset(attr) {
		if entry.Descriptor == "2x" {
			continue
		}
		return entry.URL, true
	}
	return "", false
}
