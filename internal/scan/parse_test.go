package scan

import (
	"testing"

	"creditdispute-backend/internal/compliance"
)

func TestParseAssistedResponse_RecognizedLines(t *testing.T) {
	raw := "- Account reported closed with a balance [Metro 2 Format, Base Segment Field 17A]\n" +
		"* Item past the reporting period [FCRA §605(a)(4)]\n" +
		"- Collection reported without validation [FDCPA §809]\n"

	got := ParseAssistedResponse(raw)
	if len(got) != 3 {
		t.Fatalf("expected 3 violations, got %d", len(got))
	}
	if got[0].Category != compliance.CategoryMetro2 || got[0].Statement != "Account reported closed with a balance" {
		t.Fatalf("unexpected first violation: %+v", got[0])
	}
	if got[0].Source != "Metro 2 Format, Base Segment Field 17A" {
		t.Fatalf("unexpected citation: %q", got[0].Source)
	}
	if got[1].Category != compliance.CategoryFCRA {
		t.Fatalf("expected FCRA, got %q", got[1].Category)
	}
	if got[2].Category != compliance.CategoryFDCPA {
		t.Fatalf("expected FDCPA, got %q", got[2].Category)
	}
	for _, v := range got {
		if v.RuleID != "assisted" {
			t.Fatalf("expected assisted rule id, got %q", v.RuleID)
		}
	}
}

func TestParseAssistedResponse_RejectsMalformedLines(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"no bullet", "Account closed with balance [Metro 2 Format]"},
		{"no citation", "- Account closed with balance"},
		{"unknown citation prefix", "- Account closed with balance [CFPB Bulletin]"},
		{"empty statement", "- [Metro 2 Format]"},
		{"empty citation", "- Account closed with balance []"},
		{"none sentinel", "NONE"},
		{"commentary", "The item looks fine overall."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ParseAssistedResponse(tc.raw); len(got) != 0 {
				t.Fatalf("expected no violations, got %v", got)
			}
		})
	}
}

func TestParseAssistedResponse_LastBracketWins(t *testing.T) {
	raw := "- Balance [reported] exceeds the limit [Metro 2 Format, Field 20]"
	got := ParseAssistedResponse(raw)
	if len(got) != 1 {
		t.Fatalf("expected 1 violation, got %d", len(got))
	}
	if got[0].Statement != "Balance [reported] exceeds the limit" {
		t.Fatalf("unexpected statement: %q", got[0].Statement)
	}
	if got[0].Source != "Metro 2 Format, Field 20" {
		t.Fatalf("unexpected citation: %q", got[0].Source)
	}
}

func TestParseMode(t *testing.T) {
	if ParseMode("assisted") != ModeAssisted {
		t.Fatal("expected assisted")
	}
	if ParseMode("static") != ModeStatic {
		t.Fatal("expected static")
	}
	if ParseMode("") != ModeStatic || ParseMode("turbo") != ModeStatic {
		t.Fatal("unknown modes must default to static")
	}
}
