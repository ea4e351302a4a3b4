package scan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"creditdispute-backend/internal/compliance"
	"creditdispute-backend/internal/llm"
	"creditdispute-backend/internal/report"
	"creditdispute-backend/internal/shared/metrics"
	"creditdispute-backend/internal/shared/telemetry"
	"creditdispute-backend/internal/usage"
)

// Fallback reasons recorded in TokenInfo when an assisted scan degrades to
// static rules.
const (
	fallbackInputTooLarge      = "input_too_large"
	fallbackUpstreamQuota      = "upstream_quota"
	fallbackAllowanceExhausted = "allowance_exhausted"
	fallbackNotConfigured      = "llm_not_configured"
)

// Service orchestrates compliance scans. All collaborators are injected; the
// zero value with no LLM still serves static scans.
type Service struct {
	LLM   llm.Completer
	Usage *usage.Service

	MaxInputTokens  int
	ItemTokenBudget int
	BatchSize       int

	// Now is injectable so age-based rules and tests share one evaluation
	// timestamp. Defaults to time.Now.
	Now func() time.Time
}

// itemOutcome is one item's assisted-analysis result. Each concurrent task
// owns exactly one slot, so no locking is needed.
type itemOutcome struct {
	violations []compliance.Violation
	skipped    bool
	failed     bool
	quota      bool
}

// Scan analyzes the pre-filtered report slice and returns a complete result
// payload. Assisted mode degrades to static rules on oversized input, local
// allowance exhaustion, or upstream quota errors; per-item upstream failures
// degrade only that item. The only error returns are context cancellation
// and a request payload that cannot be serialized: a cancelled scan never
// yields a partial payload.
func (s *Service) Scan(ctx context.Context, userID string, req Request, mode Mode) (Result, error) {
	startedAt := time.Now()
	metrics.IncScanStarted()

	now := time.Now().UTC()
	if s.Now != nil {
		now = s.Now()
	}

	items := normalizeRequest(req)

	serialized, err := json.Marshal(req)
	if err != nil {
		metrics.IncScanFailed()
		return Result{}, fmt.Errorf("serialize scan request: %w", err)
	}

	info := TokenInfo{
		ApproxTokens: approxTokens(serialized),
		MaxTokens:    s.maxInputTokens(),
		Mode:         string(mode),
	}

	outcomes := make([]itemOutcome, len(items))
	if mode == ModeAssisted {
		if reason, ok := s.assistedPrecheck(ctx, userID, info.ApproxTokens); !ok {
			s.fallBack(&info, reason)
		} else if err := s.runAssisted(ctx, items, outcomes, &info); err != nil {
			metrics.IncScanFailed()
			return Result{}, err
		}
	}

	if mode == ModeStatic || info.FallbackUsed {
		for i, item := range items {
			outcomes[i] = itemOutcome{violations: compliance.Evaluate(item, now)}
		}
	} else if mode == ModeAssisted && s.Usage != nil && userID != "" {
		if _, err := s.Usage.Consume(ctx, userID, 1); err != nil {
			telemetry.Error("scan.usage.consume_failed", map[string]any{"user_id": userID, "error": err.Error()})
		}
	}

	result := assemble(items, outcomes, info)
	metrics.IncScanCompleted()
	if info.FallbackUsed {
		metrics.IncScanFallback()
	}
	metrics.ObserveScanDurationMs(float64(time.Since(startedAt).Microseconds()) / 1000.0)
	telemetry.Info("scan.complete", map[string]any{
		"user_id":          userID,
		"mode":             info.Mode,
		"items":            len(items),
		"total_violations": result.TotalViolations,
		"fallback_used":    info.FallbackUsed,
		"fallback_reason":  info.FallbackReason,
		"skipped_by_size":  info.SkippedBySize,
		"failed_items":     info.FailedItems,
	})
	return result, nil
}

// assistedPrecheck runs the guards that must pass before any external call
// is dispatched.
func (s *Service) assistedPrecheck(ctx context.Context, userID string, approx int) (string, bool) {
	if s.LLM == nil {
		return fallbackNotConfigured, false
	}
	if approx > s.maxInputTokens() {
		return fallbackInputTooLarge, false
	}
	if s.Usage != nil && userID != "" {
		ok, _, err := s.Usage.CanConsume(ctx, userID, 1)
		if err != nil {
			telemetry.Error("scan.usage.check_failed", map[string]any{"user_id": userID, "error": err.Error()})
			return fallbackAllowanceExhausted, false
		}
		if !ok {
			return fallbackAllowanceExhausted, false
		}
	}
	return "", true
}

// runAssisted dispatches items in fixed-size batches. Every item in a batch
// runs concurrently and writes only its own slot; batch N+1 never starts
// before batch N completes. A quota error anywhere converts the whole scan
// to a static fallback.
func (s *Service) runAssisted(ctx context.Context, items []report.Item, outcomes []itemOutcome, info *TokenInfo) error {
	batchSize := s.batchSize()
	for start := 0; start < len(items); start += batchSize {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := start + batchSize
		if end > len(items) {
			end = len(items)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				outcomes[idx] = s.analyzeItem(ctx, items[idx])
			}(i)
		}
		wg.Wait()

		for i := start; i < end; i++ {
			if outcomes[i].quota {
				s.fallBack(info, fallbackUpstreamQuota)
				return nil
			}
			if outcomes[i].skipped {
				info.SkippedBySize++
			}
			if outcomes[i].failed {
				info.FailedItems++
			}
		}
	}
	return nil
}

func (s *Service) analyzeItem(ctx context.Context, item report.Item) itemOutcome {
	prompt, itemTokens, err := buildItemPrompt(item)
	if err != nil {
		telemetry.Error("scan.item.summary_failed", map[string]any{"item_id": item.ID, "error": err.Error()})
		return itemOutcome{failed: true}
	}
	if itemTokens > s.itemTokenBudget() {
		telemetry.Info("scan.item.skipped_by_size", map[string]any{"item_id": item.ID, "tokens": itemTokens})
		return itemOutcome{skipped: true}
	}

	resp, err := s.LLM.Complete(ctx, prompt)
	if err != nil {
		if errors.Is(err, llm.ErrQuotaExceeded) {
			return itemOutcome{quota: true}
		}
		telemetry.Error("scan.item.llm_failed", map[string]any{"item_id": item.ID, "error": err.Error()})
		return itemOutcome{failed: true}
	}
	// A response with no recognizable lines is zero violations, not an error.
	return itemOutcome{violations: ParseAssistedResponse(resp)}
}

func (s *Service) fallBack(info *TokenInfo, reason string) {
	info.FallbackUsed = true
	info.FallbackReason = reason
}

func normalizeRequest(req Request) []report.Item {
	items := report.NormalizeSlice(req.Accounts, report.KindAccount)
	items = append(items, report.NormalizeSlice(req.PublicRecords, report.KindPublicRecord)...)
	items = append(items, report.NormalizeSlice(req.Inquiries, report.KindInquiry)...)
	return items
}

// assemble merges per-item violations with statically generated suggestions
// into the response payload. Suggestions always come from the static
// generator regardless of mode.
func assemble(items []report.Item, outcomes []itemOutcome, info TokenInfo) Result {
	result := Result{
		Success:            true,
		Violations:         make(map[string][]string, len(items)),
		Metro2Violations:   map[string][]string{},
		FCRFDCPAViolations: map[string][]string{},
		Suggestions:        map[string][]string{},
		TokenInfo:          info,
	}

	for i, item := range items {
		violations := outcomes[i].violations
		statements := compliance.Normalize(compliance.Statements(violations))
		suggestions := compliance.Normalize(compliance.Suggest(violations))

		if len(statements) == 0 {
			result.Violations[item.ID] = []string{NoViolationSentinel}
			continue
		}

		result.Violations[item.ID] = statements
		result.AffectedAccounts++
		result.TotalViolations += len(statements)
		switch item.Kind {
		case report.KindAccount:
			result.Breakdown.Accounts += len(statements)
		case report.KindPublicRecord:
			result.Breakdown.PublicRecords += len(statements)
		case report.KindInquiry:
			result.Breakdown.Inquiries += len(statements)
		}

		var metro2, fcrFdcpa []string
		for _, v := range violations {
			if v.Category == compliance.CategoryMetro2 {
				metro2 = append(metro2, v.Statement)
			} else {
				fcrFdcpa = append(fcrFdcpa, v.Statement)
			}
		}
		if deduped := compliance.Normalize(metro2); len(deduped) > 0 {
			result.Metro2Violations[item.ID] = deduped
		}
		if deduped := compliance.Normalize(fcrFdcpa); len(deduped) > 0 {
			result.FCRFDCPAViolations[item.ID] = deduped
		}
		if len(suggestions) > 0 {
			result.Suggestions[item.ID] = suggestions
		}
	}

	if result.TotalViolations == 0 {
		result.Message = "No Metro 2 / FCRA / FDCPA violations detected."
	} else {
		result.Message = fmt.Sprintf("Detected %d compliance violation(s) across %d item(s).", result.TotalViolations, result.AffectedAccounts)
	}
	return result
}

func (s *Service) maxInputTokens() int {
	if s.MaxInputTokens > 0 {
		return s.MaxInputTokens
	}
	return defaultMaxInputTokens
}

func (s *Service) itemTokenBudget() int {
	if s.ItemTokenBudget > 0 {
		return s.ItemTokenBudget
	}
	return defaultItemTokenBudget
}

func (s *Service) batchSize() int {
	if s.BatchSize > 0 {
		return s.BatchSize
	}
	return defaultBatchSize
}
