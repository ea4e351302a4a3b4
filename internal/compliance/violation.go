package compliance

// Category classifies a violation by the standard or statute it breaches.
// The category is attached at creation time by the rule that produced the
// violation; display ordering still keys off the statement text (see
// Normalize) because that is the contract the UI golden-matches against.
type Category string

const (
	CategoryMetro2 Category = "Metro 2"
	CategoryFCRA   Category = "FCRA"
	CategoryFDCPA  Category = "FDCPA"
)

// Violation is one compliance defect detected on a single report item.
type Violation struct {
	RuleID    string   `json:"ruleId"`
	Category  Category `json:"category"`
	Statement string   `json:"statement"`
	Source    string   `json:"source"`
}
