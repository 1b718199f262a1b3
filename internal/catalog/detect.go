package catalog

import "strings"

// Detect matches free text against the catalog. Each type's search terms are
// its id with underscores spelled out plus its synonym list; matching is a
// case-insensitive substring check. The first catalog entry with any hit
// wins, so catalog order is the tie-break when several types appear in the
// same sentence.
func (c *Catalog) Detect(text string) (string, bool) {
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	lower := strings.ToLower(text)
	for _, t := range c.Types {
		terms := append([]string{strings.ReplaceAll(t.ID, "_", " ")}, t.Sinonimos...)
		for _, term := range terms {
			if term != "" && strings.Contains(lower, strings.ToLower(term)) {
				return t.ID, true
			}
		}
	}
	return "", false
}
