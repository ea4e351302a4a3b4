package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Normalize maps one loosely-typed upstream record into the canonical Item
// shape. position is the zero-based index of the record within its section
// and seeds the placeholder ID when no identifier field is present.
func Normalize(raw map[string]any, kind Kind, position int) Item {
	it := Item{Kind: kind, Raw: raw}

	switch kind {
	case KindAccount:
		it.ID = firstString(raw, "CreditLiabilityID", "AccountIdentifier", "AccountNumber")
		it.CreditorName = firstString(raw, "CreditorName", "SubscriberName", "Name")
		it.AccountNumber = firstString(raw, "AccountNumber", "AccountIdentifier")
		it.AccountType = firstString(raw, "AccountType", "CreditLoanType")
		it.Status = firstString(raw, "AccountStatusType", "Status", "CurrentAccountRatingText")
		it.Rating = firstString(raw, "AccountRating", "Rating", "CurrentRating")
		it.Balance = numberField(raw, "UnpaidBalanceAmount", "Balance", "BalanceAmount")
		it.CreditLimit = numberField(raw, "CreditLimitAmount", "CreditLimit")
		it.HighCredit = numberField(raw, "HighCreditAmount", "HighBalance")
		it.PastDue = numberField(raw, "PastDueAmount", "PastDue")
		it.Derogatory = flagField(raw, "DerogatoryDataIndicator", "DerogatoryIndicator", "IsDerogatoryIndicator")
		it.Collection = flagField(raw, "IsCollectionIndicator", "CollectionIndicator") || containsFold(it.Status, "collection")
		it.ChargeOff = flagField(raw, "IsChargeoffIndicator", "ChargeOffIndicator") || containsFold(it.Status, "charge")
		it.Disputed = flagField(raw, "ConsumerDisputeIndicator", "DisputeIndicator")
		it.DateOpened = dateField(raw, "AccountOpenedDate", "DateOpened")
		it.DateReported = dateField(raw, "AccountReportedDate", "DateReported", "LastReportedDate")
		it.DateFirstDelinquency = dateField(raw, "FirstDelinquencyDate", "DateFirstDelinquency", "DelinquencyDate")
		it.DateLastActivity = dateField(raw, "LastActivityDate", "DateLastActivity", "LastPaymentDate")
		it.DateClosed = dateField(raw, "AccountClosedDate", "DateClosed")
	case KindPublicRecord:
		it.ID = firstString(raw, "CreditPublicRecordID", "RecordKey", "DocketNumber", "ReferenceNumber")
		it.RecordType = firstString(raw, "PublicRecordType", "RecordType", "Type")
		it.CourtName = firstString(raw, "CourtName", "Court")
		it.Status = firstString(raw, "DispositionType", "Status")
		it.Balance = numberField(raw, "LiabilityAmount", "Amount")
		it.DateFiled = dateField(raw, "FiledDate", "DateFiled")
		it.DateResolved = dateField(raw, "DischargeDate", "SatisfiedDate", "DateResolved", "DispositionDate")
		it.DateReported = dateField(raw, "ReportedDate", "DateReported")
	case KindInquiry:
		it.ID = firstString(raw, "CreditInquiryID", "InquiryKey", "ReferenceNumber")
		it.SubscriberName = firstString(raw, "SubscriberName", "Name", "InquirerName")
		it.InquiryDate = dateField(raw, "InquiryDate", "Date")
		it.Purpose = firstString(raw, "PermissiblePurposeType", "InquiryPurposeType", "Purpose")
	}

	it.Remarks = remarksField(raw)

	if strings.TrimSpace(it.ID) == "" {
		it.ID = placeholderID(kind, position)
	}
	return it
}

// NormalizeSlice normalizes a whole report section, preserving order.
func NormalizeSlice(raws []map[string]any, kind Kind) []Item {
	items := make([]Item, 0, len(raws))
	for i, raw := range raws {
		items = append(items, Normalize(raw, kind, i))
	}
	return items
}

// placeholderID is positional and deterministic so repeated scans of the same
// payload correlate to the same on-screen row.
func placeholderID(kind Kind, position int) string {
	return fmt.Sprintf("%s-%d", kind, position+1)
}

// lookup tries the attribute-prefixed spellings the bureau payloads use:
// "@_Name", "@Name", "Name" and lowerCamel "name".
func lookup(raw map[string]any, name string) (any, bool) {
	for _, key := range []string{"@_" + name, "@" + name, name, lowerFirst(name)} {
		if v, ok := raw[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func firstString(raw map[string]any, names ...string) string {
	for _, name := range names {
		if v, ok := lookup(raw, name); ok {
			if s := stringify(v); s != "" {
				return s
			}
		}
	}
	return ""
}

// numberField parses the first present candidate, treating unparsable values
// as zero rather than dropping the item.
func numberField(raw map[string]any, names ...string) float64 {
	for _, name := range names {
		v, ok := lookup(raw, name)
		if !ok {
			continue
		}
		switch n := v.(type) {
		case float64:
			return n
		case int:
			return float64(n)
		case string:
			cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(n)
			if cleaned == "" {
				return 0
			}
			parsed, err := strconv.ParseFloat(cleaned, 64)
			if err != nil {
				return 0
			}
			return parsed
		}
		return 0
	}
	return 0
}

func flagField(raw map[string]any, names ...string) bool {
	for _, name := range names {
		v, ok := lookup(raw, name)
		if !ok {
			continue
		}
		switch f := v.(type) {
		case bool:
			return f
		case string:
			switch strings.ToLower(strings.TrimSpace(f)) {
			case "y", "yes", "true", "1":
				return true
			}
			return false
		}
		return false
	}
	return false
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z07:00",
	"01/02/2006",
	"2006-01",
	"01/2006",
}

// dateField returns nil for absent or unparsable dates so age-based rule
// predicates can short-circuit instead of raising false positives.
func dateField(raw map[string]any, names ...string) *time.Time {
	for _, name := range names {
		v, ok := lookup(raw, name)
		if !ok {
			continue
		}
		s := strings.TrimSpace(stringify(v))
		if s == "" {
			return nil
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return &t
			}
		}
		return nil
	}
	return nil
}

func remarksField(raw map[string]any) []string {
	v, ok := lookup(raw, "Remarks")
	if !ok {
		v, ok = lookup(raw, "CreditComment")
	}
	if !ok {
		return nil
	}
	switch r := v.(type) {
	case string:
		if trimmed := strings.TrimSpace(r); trimmed != "" {
			return []string{trimmed}
		}
	case []string:
		return r
	case []any:
		out := make([]string, 0, len(r))
		for _, entry := range r {
			if s := stringify(entry); s != "" {
				out = append(out, s)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case bool:
		if s {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

func lowerFirst(name string) string {
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
