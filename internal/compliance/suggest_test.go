package compliance

import (
	"strings"
	"testing"
)

func TestSuggest_FirstFragmentWins(t *testing.T) {
	// The DOFD statement also mentions a derogatory account; the more
	// specific fragment must pick the furnisher strategy.
	rule, ok := LookupRule("metro2-missing-dofd")
	if !ok {
		t.Fatal("missing catalog rule")
	}
	got := Suggest([]Violation{rule.violation()})
	if len(got) != 1 {
		t.Fatalf("expected one suggestion, got %d", len(got))
	}
	if !strings.Contains(got[0], "furnisher") || !strings.Contains(got[0], "Date of First Delinquency") {
		t.Fatalf("unexpected strategy: %q", got[0])
	}
}

func TestSuggest_UnknownStatementContributesNothing(t *testing.T) {
	got := Suggest([]Violation{{RuleID: "x", Statement: "Completely unrecognized wording."}})
	if len(got) != 0 {
		t.Fatalf("expected no suggestions, got %v", got)
	}
}

func TestSuggest_EveryCatalogRuleHasAStrategy(t *testing.T) {
	for _, rule := range Catalog() {
		got := Suggest([]Violation{rule.violation()})
		if len(got) != 1 {
			t.Fatalf("rule %s produced %d suggestions", rule.ID, len(got))
		}
	}
}
