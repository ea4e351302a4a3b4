package usage

import "time"

// Usage is a user's assisted-scan allowance snapshot for the current period.
type Usage struct {
	Plan     string    `json:"plan"`
	Limit    int       `json:"limit"`
	Used     int       `json:"used"`
	ResetsAt time.Time `json:"resetsAt"`
}
