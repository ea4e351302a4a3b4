package usage

import "errors"

// ErrLimitReached indicates the user exhausted the assisted-scan allowance.
var ErrLimitReached = errors.New("scan allowance exhausted")
