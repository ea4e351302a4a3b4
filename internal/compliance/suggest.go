package compliance

import "strings"

// remediation pairs a keyword fragment with a canned dispute strategy. The
// list is ordered: the first fragment contained in a violation statement
// wins, so more specific fragments come before generic ones.
type remediation struct {
	fragment string
	strategy string
}

var remediations = []remediation{
	{
		fragment: "Date of First Delinquency",
		strategy: "Dispute directly with the furnisher and demand the Date of First Delinquency be reported accurately per the Metro 2 Format; request deletion if the furnisher cannot substantiate it.",
	},
	{
		fragment: "Bankruptcy discharge",
		strategy: "Request court and trustee records confirming the discharge and demand the bureaus update the public record status to reflect it.",
	},
	{
		fragment: "Collection",
		strategy: "Send a debt validation letter under FDCPA §809 within the validation window and dispute the tradeline until validation is provided.",
	},
	{
		fragment: "re-aging",
		strategy: "Demand the furnisher certify the original charge-off date and correct the activity dates; re-aged accounts must be deleted.",
	},
	{
		fragment: "7-year reporting period",
		strategy: "Demand the bureau delete the obsolete item under FCRA §605; items past the reporting period may not be re-inserted without certification.",
	},
	{
		fragment: "10-year reporting period",
		strategy: "Demand the bureau delete the obsolete bankruptcy under FCRA §605(a)(1).",
	},
	{
		fragment: "2-year retention period",
		strategy: "Dispute the stale inquiry with the bureau and request its removal from the file.",
	},
	{
		fragment: "permissible purpose",
		strategy: "Send a §604 permissible-purpose demand to the inquiring subscriber; unauthorized inquiries must be deleted.",
	},
	{
		fragment: "subscriber name",
		strategy: "Dispute the unidentifiable inquiry with the bureau; an inquiry that cannot be traced to a subscriber cannot be verified.",
	},
	{
		fragment: "past-due",
		strategy: "Dispute the inconsistent status and past-due amount with the furnisher and request a Metro 2 compliant correction.",
	},
	{
		fragment: "balance",
		strategy: "Dispute the balance reporting with the furnisher and demand correction of the balance and credit-limit fields under the Metro 2 Format.",
	},
	{
		fragment: "filing date",
		strategy: "Dispute the incomplete public record with the bureau; a record missing its filing date cannot be verified as timely.",
	},
}

// Suggest maps each violation to at most one remediation strategy. A
// violation whose statement contains none of the known fragments contributes
// nothing; callers must not assume a 1:1 violation-to-suggestion mapping.
func Suggest(violations []Violation) []string {
	var out []string
	for _, v := range violations {
		for _, r := range remediations {
			if strings.Contains(v.Statement, r.fragment) {
				out = append(out, r.strategy)
				break
			}
		}
	}
	return out
}
