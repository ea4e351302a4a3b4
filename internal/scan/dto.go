package scan

// Mode selects how items are analyzed.
type Mode string

const (
	// ModeStatic runs only the local deterministic rule evaluator.
	ModeStatic Mode = "static"
	// ModeAssisted augments the rule evaluator with per-item external
	// completion calls, falling back to static on size or quota failures.
	ModeAssisted Mode = "assisted"
)

// ParseMode maps a request-supplied mode string onto a known Mode,
// defaulting to static.
func ParseMode(raw string) Mode {
	switch Mode(raw) {
	case ModeAssisted:
		return ModeAssisted
	default:
		return ModeStatic
	}
}

// Request is the scan payload. The caller pre-filters each section to
// negative/relevant items only; the orchestrator analyzes everything it is
// given.
type Request struct {
	Accounts      []map[string]any `json:"CREDIT_LIABILITY"`
	PublicRecords []map[string]any `json:"PUBLIC_RECORD"`
	Inquiries     []map[string]any `json:"INQUIRY"`
	Mode          string           `json:"mode,omitempty"`
}

// TokenInfo reports the size accounting and fallback state for a scan.
type TokenInfo struct {
	ApproxTokens   int    `json:"approxTokens"`
	MaxTokens      int    `json:"maxTokens"`
	Mode           string `json:"mode"`
	FallbackUsed   bool   `json:"fallbackUsed"`
	FallbackReason string `json:"fallbackReason,omitempty"`
	SkippedBySize  int    `json:"skippedBySize"`
	FailedItems    int    `json:"failedItems"`
}

// Breakdown counts violations by item kind.
type Breakdown struct {
	Accounts      int `json:"accounts"`
	PublicRecords int `json:"publicRecords"`
	Inquiries     int `json:"inquiries"`
}

// Result is the full scan payload returned to the presentation layer. It is
// always well-formed: fallback and per-item failures surface through
// TokenInfo, never as a missing or partial body.
type Result struct {
	Success            bool                `json:"success"`
	TotalViolations    int                 `json:"totalViolations"`
	AffectedAccounts   int                 `json:"affectedAccounts"`
	Violations         map[string][]string `json:"violations"`
	Metro2Violations   map[string][]string `json:"metro2Violations"`
	FCRFDCPAViolations map[string][]string `json:"fcrFdcpaViolations"`
	Suggestions        map[string][]string `json:"suggestions"`
	Breakdown          Breakdown           `json:"breakdown"`
	Message            string              `json:"message"`
	TokenInfo          TokenInfo           `json:"tokenInfo"`
}

// NoViolationSentinel is substituted for an item whose evaluation produced
// nothing. The evaluator itself never emits it; it belongs to this
// formatting layer.
const NoViolationSentinel = "No Metro 2 / FCRA / FDCPA violation detected for this item."
