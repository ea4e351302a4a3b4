package scan

import (
	"strings"

	"creditdispute-backend/internal/compliance"
)

// ParseAssistedResponse extracts violations from the completion model's free
// text. The model output is an untrusted external boundary, so the accepted
// grammar is explicit and narrow: a recognized line starts with a bullet
// marker ("- " or "* ") and contains exactly one bracketed citation whose
// text begins with "Metro 2", "FCRA", or "FDCPA". Anything else on the line
// before the bracket is the violation statement. A response with no
// recognizable lines yields an empty slice, which the orchestrator records
// as zero violations for the item.
func ParseAssistedResponse(raw string) []compliance.Violation {
	var out []compliance.Violation
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		body, ok := stripBullet(line)
		if !ok {
			continue
		}
		statement, citation, ok := splitCitation(body)
		if !ok {
			continue
		}
		category, ok := citationCategory(citation)
		if !ok {
			continue
		}
		if statement == "" {
			continue
		}
		out = append(out, compliance.Violation{
			RuleID:    "assisted",
			Category:  category,
			Statement: statement,
			Source:    citation,
		})
	}
	return out
}

func stripBullet(line string) (string, bool) {
	for _, marker := range []string{"- ", "* "} {
		if strings.HasPrefix(line, marker) {
			return strings.TrimSpace(strings.TrimPrefix(line, marker)), true
		}
	}
	return "", false
}

func splitCitation(body string) (statement, citation string, ok bool) {
	open := strings.LastIndex(body, "[")
	if open < 0 {
		return "", "", false
	}
	close := strings.Index(body[open:], "]")
	if close < 0 {
		return "", "", false
	}
	citation = strings.TrimSpace(body[open+1 : open+close])
	statement = strings.TrimSpace(body[:open])
	return statement, citation, citation != ""
}

func citationCategory(citation string) (compliance.Category, bool) {
	switch {
	case strings.HasPrefix(citation, "Metro 2"):
		return compliance.CategoryMetro2, true
	case strings.HasPrefix(citation, "FCRA"):
		return compliance.CategoryFCRA, true
	case strings.HasPrefix(citation, "FDCPA"):
		return compliance.CategoryFDCPA, true
	default:
		return "", false
	}
}
