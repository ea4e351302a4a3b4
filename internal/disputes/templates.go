package disputes

// builtinTemplates are the seeded reason/instruction pairs offered to every
// user before they author their own. IDs are stable so the UI can reference
// them across sessions.
var builtinTemplates = []Template{
	{
		ID:          "tpl-not-mine",
		Category:    "ownership",
		Reason:      "This account does not belong to me.",
		Instruction: "Delete this account from my credit report immediately.",
	},
	{
		ID:          "tpl-inaccurate-balance",
		Category:    "accuracy",
		Reason:      "The balance reported for this account is inaccurate.",
		Instruction: "Correct the balance to reflect the accurate amount or delete the account.",
	},
	{
		ID:          "tpl-missing-dofd",
		Category:    "metro2",
		Reason:      "This derogatory account is reported without a Date of First Delinquency.",
		Instruction: "Report the accurate Date of First Delinquency per the Metro 2 Format or delete the account.",
	},
	{
		ID:          "tpl-obsolete",
		Category:    "fcra",
		Reason:      "This item is beyond the legal reporting period.",
		Instruction: "Delete this obsolete item as required by FCRA §605.",
	},
	{
		ID:          "tpl-unvalidated-collection",
		Category:    "fdcpa",
		Reason:      "This collection has not been validated as required by the FDCPA.",
		Instruction: "Provide validation of this debt or delete the collection account.",
	},
	{
		ID:          "tpl-unauthorized-inquiry",
		Category:    "fcra",
		Reason:      "I did not authorize this inquiry.",
		Instruction: "Remove this unauthorized inquiry from my credit report.",
	},
}

// BuiltinTemplates returns the seeded template catalog.
func BuiltinTemplates() []Template {
	out := make([]Template, len(builtinTemplates))
	copy(out, builtinTemplates)
	return out
}
