package usage

import "time"

const (
	defaultPlan  = "free"
	defaultLimit = 5

	// allowancePeriod is the rolling window for assisted-scan quota.
	allowancePeriod = 30 * 24 * time.Hour
)

func defaultUsage() Usage {
	return Usage{
		Plan:     defaultPlan,
		Limit:    defaultLimit,
		Used:     0,
		ResetsAt: time.Now().UTC().Add(allowancePeriod),
	}
}
