package compliance

import (
	"reflect"
	"testing"
)

func TestNormalize_DedupFirstWins(t *testing.T) {
	in := []string{
		"FCRA violation: stale item.",
		"  FCRA violation: stale item.  ",
		"FCRA violation: stale item.",
	}
	got := Normalize(in)
	want := []string{"FCRA violation: stale item."}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNormalize_PartitionOrder(t *testing.T) {
	in := []string{
		"FDCPA violation: collection reported.",
		"Something uncategorized.",
		"FCRA violation: obsolete item.",
		"Metro 2 violation: missing DOFD.",
		"FCRA violation: stale inquiry.",
	}
	got := Normalize(in)
	want := []string{
		"Metro 2 violation: missing DOFD.",
		"FCRA violation: obsolete item.",
		"FCRA violation: stale inquiry.",
		"FDCPA violation: collection reported.",
		"Something uncategorized.",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNormalize_DropsEmptyEntries(t *testing.T) {
	got := Normalize([]string{"", "   ", "Metro 2 violation: x."})
	want := []string{"Metro 2 violation: x."}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestStatements(t *testing.T) {
	violations := []Violation{
		{RuleID: "a", Statement: "first"},
		{RuleID: "b", Statement: "second"},
	}
	got := Statements(violations)
	want := []string{"first", "second"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
