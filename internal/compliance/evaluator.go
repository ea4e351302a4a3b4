package compliance

import (
	"strings"
	"time"

	"creditdispute-backend/internal/report"
)

const (
	accountReportingAge  = 7 * 365 * 24 * time.Hour
	bankruptcyAge        = 10 * 365 * 24 * time.Hour
	inquiryRetention     = 2 * 365 * 24 * time.Hour
	chargeOffQuietPeriod = 6 * 30 * 24 * time.Hour
)

// Evaluate runs the fixed predicate sequence for the item's kind and returns
// every matching violation. Predicates are independent: one matching never
// suppresses another. Pure and deterministic for a given now; age thresholds
// are a function of evaluation time, not a stored fact.
//
// An item matching nothing returns an empty slice; the sentinel line for
// empty results belongs to the formatting step in the scan package, never
// here.
func Evaluate(item report.Item, now time.Time) []Violation {
	switch item.Kind {
	case report.KindAccount:
		return evaluateAccount(item, now)
	case report.KindPublicRecord:
		return evaluatePublicRecord(item, now)
	case report.KindInquiry:
		return evaluateInquiry(item, now)
	default:
		return nil
	}
}

func evaluateAccount(item report.Item, now time.Time) []Violation {
	var out []Violation
	add := func(ruleID string) {
		if r, ok := LookupRule(ruleID); ok {
			out = append(out, r.violation())
		}
	}

	if item.Derogatory && item.DateFirstDelinquency == nil {
		add("metro2-missing-dofd")
	}
	if isClosedStatus(item.Status) && item.Balance > 0 {
		add("metro2-closed-with-balance")
	}
	if item.CreditLimit > 0 && item.Balance > item.CreditLimit {
		add("metro2-balance-exceeds-limit")
	}
	if isCurrentStatus(item.Status) && item.PastDue > 0 {
		add("metro2-current-with-past-due")
	}
	if item.ChargeOff && withinAge(item.DateLastActivity, now, chargeOffQuietPeriod) {
		add("metro2-chargeoff-recent-activity")
	}
	if olderThan(item.DateFirstDelinquency, now, accountReportingAge) {
		add("fcra-obsolete-account")
	}
	if item.Collection && !item.HasRemarkContaining("validat") {
		add("fdcpa-collection-no-validation")
	}
	return out
}

func evaluatePublicRecord(item report.Item, now time.Time) []Violation {
	var out []Violation
	add := func(ruleID string) {
		if r, ok := LookupRule(ruleID); ok {
			out = append(out, r.violation())
		}
	}

	bankruptcy := strings.Contains(strings.ToLower(item.RecordType), "bankrupt")

	if item.DateFiled == nil {
		add("metro2-public-record-no-filing-date")
	}
	if bankruptcy && olderThan(item.DateFiled, now, bankruptcyAge) {
		add("fcra-obsolete-bankruptcy")
	}
	if !bankruptcy && olderThan(item.DateFiled, now, accountReportingAge) {
		add("fcra-obsolete-public-record")
	}
	if bankruptcy && item.DateResolved != nil && !isResolvedStatus(item.Status) {
		add("fcra-discharge-not-reflected")
	}
	return out
}

func evaluateInquiry(item report.Item, now time.Time) []Violation {
	var out []Violation
	add := func(ruleID string) {
		if r, ok := LookupRule(ruleID); ok {
			out = append(out, r.violation())
		}
	}

	if olderThan(item.InquiryDate, now, inquiryRetention) {
		add("fcra-stale-inquiry")
	}
	if strings.TrimSpace(item.SubscriberName) == "" {
		add("metro2-inquiry-no-subscriber")
	}
	if strings.TrimSpace(item.Purpose) == "" {
		add("fcra-inquiry-no-purpose")
	}
	return out
}

// olderThan short-circuits on absent dates: a missing date never produces an
// age-based violation.
func olderThan(t *time.Time, now time.Time, age time.Duration) bool {
	if t == nil {
		return false
	}
	return now.Sub(*t) > age
}

func withinAge(t *time.Time, now time.Time, age time.Duration) bool {
	if t == nil {
		return false
	}
	diff := now.Sub(*t)
	return diff >= 0 && diff <= age
}

func isClosedStatus(status string) bool {
	s := strings.ToLower(strings.TrimSpace(status))
	return s == "closed" || strings.Contains(s, "paid/closed")
}

func isCurrentStatus(status string) bool {
	s := strings.ToLower(strings.TrimSpace(status))
	return s == "open" || s == "current" || s == "pays as agreed"
}

func isResolvedStatus(status string) bool {
	s := strings.ToLower(strings.TrimSpace(status))
	return strings.Contains(s, "discharg") || strings.Contains(s, "dismiss") || strings.Contains(s, "satisf")
}
