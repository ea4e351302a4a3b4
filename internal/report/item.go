package report

import "time"

// Kind identifies which section of the credit report an item came from.
type Kind string

const (
	KindAccount      Kind = "account"
	KindPublicRecord Kind = "publicRecord"
	KindInquiry      Kind = "inquiry"
)

// Item is the canonical, single-shape view of one credit-report entry.
// Upstream bureau payloads use loosely-typed, attribute-prefixed maps; all
// fallback-chain lookups happen once in Normalize so rule predicates never
// touch the raw shape.
type Item struct {
	Kind Kind   `json:"kind"`
	ID   string `json:"id"`

	CreditorName  string `json:"creditorName,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty"`
	AccountType   string `json:"accountType,omitempty"`
	Status        string `json:"status,omitempty"`
	Rating        string `json:"rating,omitempty"`

	Balance     float64 `json:"balance"`
	CreditLimit float64 `json:"creditLimit"`
	HighCredit  float64 `json:"highCredit"`
	PastDue     float64 `json:"pastDue"`

	Derogatory bool `json:"derogatory"`
	Collection bool `json:"collection"`
	ChargeOff  bool `json:"chargeOff"`
	Disputed   bool `json:"disputed"`

	DateOpened           *time.Time `json:"dateOpened,omitempty"`
	DateReported         *time.Time `json:"dateReported,omitempty"`
	DateFirstDelinquency *time.Time `json:"dateFirstDelinquency,omitempty"`
	DateLastActivity     *time.Time `json:"dateLastActivity,omitempty"`
	DateClosed           *time.Time `json:"dateClosed,omitempty"`

	// Public-record fields.
	RecordType   string     `json:"recordType,omitempty"`
	CourtName    string     `json:"courtName,omitempty"`
	DateFiled    *time.Time `json:"dateFiled,omitempty"`
	DateResolved *time.Time `json:"dateResolved,omitempty"`

	// Inquiry fields.
	SubscriberName string     `json:"subscriberName,omitempty"`
	InquiryDate    *time.Time `json:"inquiryDate,omitempty"`
	Purpose        string     `json:"purpose,omitempty"`

	Remarks []string `json:"remarks,omitempty"`

	// Raw keeps the upstream record for summaries and audit; never consulted
	// by rule predicates.
	Raw map[string]any `json:"-"`
}

// HasRemarkContaining reports whether any remark contains the given fragment,
// case-insensitively.
func (it Item) HasRemarkContaining(fragment string) bool {
	for _, r := range it.Remarks {
		if containsFold(r, fragment) {
			return true
		}
	}
	return false
}
