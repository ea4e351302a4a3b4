package scan

const (
	// defaultMaxInputTokens caps the serialized request size for assisted
	// mode; larger payloads fall back to static rules before any external
	// call is attempted.
	defaultMaxInputTokens = 30000

	// defaultItemTokenBudget caps a single item's serialized summary in
	// assisted mode. Oversized items are skipped and counted, never
	// truncated.
	defaultItemTokenBudget = 1500

	// defaultBatchSize bounds simultaneous external-call concurrency. A
	// fixed batch with a full await is deliberately simpler than a work
	// queue at this request volume.
	defaultBatchSize = 5
)

// approxTokens estimates the token count of a serialized payload at roughly
// four bytes per token. It only needs to be stable and cheap, not exact.
func approxTokens(b []byte) int {
	return (len(b) + 3) / 4
}
