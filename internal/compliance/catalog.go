package compliance

// Rule is one entry in the static compliance knowledge base. Statements are
// fixed strings, not templates: keeping them constant makes dedup exact and
// scan output reproducible.
type Rule struct {
	ID        string
	Category  Category
	Statement string
	Source    string
}

// The rule catalog is hand-authored from Metro 2 field definitions, FCRA and
// FDCPA citations, and CRC training material. It is read-only process-wide
// state, safe for unsynchronized concurrent reads.
var catalogRules = []Rule{
	{
		ID:        "metro2-missing-dofd",
		Category:  CategoryMetro2,
		Statement: "Metro 2 violation: Derogatory account reported without a Date of First Delinquency (DOFD).",
		Source:    "CRC Advanced Disputing Workbook, Page 3-46",
	},
	{
		ID:        "metro2-closed-with-balance",
		Category:  CategoryMetro2,
		Statement: "Metro 2 violation: Account reported as Closed while carrying a non-zero current balance.",
		Source:    "Metro 2 Format, Base Segment Field 17A (Account Status)",
	},
	{
		ID:        "metro2-balance-exceeds-limit",
		Category:  CategoryMetro2,
		Statement: "Metro 2 violation: Current balance exceeds the reported credit limit.",
		Source:    "Metro 2 Format, Base Segment Fields 20-21 (Credit Limit / Current Balance)",
	},
	{
		ID:        "metro2-current-with-past-due",
		Category:  CategoryMetro2,
		Statement: "Metro 2 violation: Account rated current or open while reporting a past-due amount.",
		Source:    "CRC Advanced Disputing Workbook, Page 4-12",
	},
	{
		ID:        "metro2-chargeoff-recent-activity",
		Category:  CategoryMetro2,
		Statement: "Metro 2 violation: Charged-off account shows recent activity within the last 6 months, indicating possible re-aging.",
		Source:    "CRC Advanced Disputing Workbook, Page 5-23",
	},
	{
		ID:        "metro2-public-record-no-filing-date",
		Category:  CategoryMetro2,
		Statement: "Metro 2 violation: Public record reported without a filing date.",
		Source:    "Metro 2 Format, Public Record Segment",
	},
	{
		ID:        "metro2-inquiry-no-subscriber",
		Category:  CategoryMetro2,
		Statement: "Metro 2 violation: Inquiry reported without an identifiable subscriber name.",
		Source:    "Metro 2 Format, Inquiry Segment",
	},
	{
		ID:        "fcra-obsolete-account",
		Category:  CategoryFCRA,
		Statement: "FCRA violation: Account remains on file beyond the 7-year reporting period measured from the Date of First Delinquency.",
		Source:    "FCRA §605(a)(4), 15 U.S.C. §1681c",
	},
	{
		ID:        "fcra-obsolete-bankruptcy",
		Category:  CategoryFCRA,
		Statement: "FCRA violation: Bankruptcy remains on file beyond the 10-year reporting period measured from the filing date.",
		Source:    "FCRA §605(a)(1), 15 U.S.C. §1681c",
	},
	{
		ID:        "fcra-discharge-not-reflected",
		Category:  CategoryFCRA,
		Statement: "FCRA violation: Bankruptcy discharge is on record but the public record status does not reflect the discharge.",
		Source:    "FCRA §607(b), 15 U.S.C. §1681e(b)",
	},
	{
		ID:        "fcra-obsolete-public-record",
		Category:  CategoryFCRA,
		Statement: "FCRA violation: Public record remains on file beyond the 7-year reporting period measured from the filing date.",
		Source:    "FCRA §605(a)(3), 15 U.S.C. §1681c",
	},
	{
		ID:        "fcra-stale-inquiry",
		Category:  CategoryFCRA,
		Statement: "FCRA violation: Hard inquiry remains on file beyond the 2-year retention period.",
		Source:    "FCRA §604, 15 U.S.C. §1681b",
	},
	{
		ID:        "fcra-inquiry-no-purpose",
		Category:  CategoryFCRA,
		Statement: "FCRA violation: Inquiry reported without a documented permissible purpose.",
		Source:    "FCRA §604(a)(3), 15 U.S.C. §1681b",
	},
	{
		ID:        "fdcpa-collection-no-validation",
		Category:  CategoryFDCPA,
		Statement: "FDCPA violation: Collection account reported without evidence of debt validation.",
		Source:    "FDCPA §809, 15 U.S.C. §1692g",
	},
}

var catalogByID = func() map[string]Rule {
	index := make(map[string]Rule, len(catalogRules))
	for _, r := range catalogRules {
		index[r.ID] = r
	}
	return index
}()

// Catalog returns all catalog rules in authoring order.
func Catalog() []Rule {
	out := make([]Rule, len(catalogRules))
	copy(out, catalogRules)
	return out
}

// LookupRule returns the rule with the given ID.
func LookupRule(id string) (Rule, bool) {
	r, ok := catalogByID[id]
	return r, ok
}

// RulesByCategory filters the catalog to one category, preserving order.
func RulesByCategory(cat Category) []Rule {
	var out []Rule
	for _, r := range catalogRules {
		if r.Category == cat {
			out = append(out, r)
		}
	}
	return out
}

func (r Rule) violation() Violation {
	return Violation{RuleID: r.ID, Category: r.Category, Statement: r.Statement, Source: r.Source}
}
