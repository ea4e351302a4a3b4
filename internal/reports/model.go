package reports

import "time"

// Payload is the parsed tri-bureau report slice as submitted by the report
// loader. Sections keep the upstream loosely-typed records; normalization
// into canonical items happens in the report package at scan time.
type Payload struct {
	Accounts      []map[string]any `json:"CREDIT_LIABILITY"`
	PublicRecords []map[string]any `json:"PUBLIC_RECORD"`
	Inquiries     []map[string]any `json:"INQUIRY"`
}

// Report is one persisted credit-report snapshot. JSON submissions carry a
// Payload; PDF imports carry storage keys for the original file and its
// extracted text.
type Report struct {
	ID                string    `json:"id"`
	UserID            string    `json:"userId"`
	Source            string    `json:"source,omitempty"`
	FileName          string    `json:"fileName,omitempty"`
	StorageKey        string    `json:"-"`
	RawTextKey        string    `json:"-"`
	Payload           *Payload  `json:"payload,omitempty"`
	AccountCount      int       `json:"accountCount"`
	PublicRecordCount int       `json:"publicRecordCount"`
	InquiryCount      int       `json:"inquiryCount"`
	CreatedAt         time.Time `json:"createdAt"`
}
