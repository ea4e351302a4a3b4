package scan

import (
	"encoding/json"
	"fmt"

	"creditdispute-backend/internal/report"
)

const promptPreamble = `You are a credit reporting compliance analyst. Review the credit report item below for Metro 2 Format, FCRA, and FDCPA violations.

Respond with one line per violation, formatted exactly as:
- <violation statement> [<citation>]

The citation must begin with "Metro 2", "FCRA", or "FDCPA". If the item has no violations, respond with the single word NONE. Do not add commentary.`

// buildItemPrompt renders the analysis prompt for one canonical item. The
// summary is the canonical Item, not the raw bureau record, so the model
// sees the same fields the static evaluator does.
func buildItemPrompt(item report.Item) (string, int, error) {
	summary, err := json.Marshal(item)
	if err != nil {
		return "", 0, err
	}
	prompt := fmt.Sprintf("%s\n\nItem kind: %s\nItem data:\n%s\n", promptPreamble, item.Kind, summary)
	return prompt, approxTokens(summary), nil
}
