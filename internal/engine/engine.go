package engine

import (
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"bonus-tax-engine/internal/bracket"
	"bonus-tax-engine/internal/model"
	"bonus-tax-engine/internal/operations"
	"bonus-tax-engine/internal/tax"
)

// Process runs every calculation of req against scheme, in order. The first
// CRITICAL message stops processing and marks the outcome as FAILURE.
func Process(req *model.CalculationRequest, scheme model.TaxScheme, opts ...tax.Option) *model.CalculationResponse {
	start := time.Now()

	var allMessages []model.CalculationMessage
	var processed []model.ProcessedCalculation
	outcome := model.OutcomeSuccess

	record := func(msgs []model.CalculationMessage, indexes []int) ([]int, bool) {
		critical := false
		for _, m := range msgs {
			m.ID = len(allMessages)
			allMessages = append(allMessages, m)
			indexes = append(indexes, m.ID)
			if m.Level == model.LevelCritical {
				critical = true
			}
		}
		return indexes, critical
	}

	if err := bracket.Check(scheme.Brackets); err != nil {
		record([]model.CalculationMessage{{
			Level:   model.LevelCritical,
			Code:    model.CodeInvalidScheme,
			Message: fmt.Sprintf("Scheme %s is invalid: %v", scheme.ID, err),
		}}, nil)
		outcome = model.OutcomeFailure
	}

	calc := tax.New(scheme, opts...)

	for i := range req.Calculations {
		if outcome == model.OutcomeFailure {
			break
		}
		c := req.Calculations[i]

		handler, ok := operations.Get(c.Operation)
		if !ok {
			indexes, _ := record([]model.CalculationMessage{{
				Level:   model.LevelCritical,
				Code:    model.CodeUnknownOperation,
				Message: fmt.Sprintf("Unknown operation: %s", c.Operation),
			}}, nil)
			processed = append(processed, model.ProcessedCalculation{
				Calculation:               c,
				CalculationMessageIndexes: indexes,
			})
			outcome = model.OutcomeFailure
			break
		}

		// Validate
		indexes, critical := record(handler.Validate(calc, &c), nil)
		if critical {
			processed = append(processed, model.ProcessedCalculation{
				Calculation:               c,
				CalculationMessageIndexes: indexes,
			})
			outcome = model.OutcomeFailure
			break
		}

		// Apply
		out, applyMsgs := handler.Apply(calc, &c)
		indexes, critical = record(applyMsgs, indexes)

		entry := model.ProcessedCalculation{
			Calculation:               c,
			CalculationMessageIndexes: indexes,
		}
		if !critical && out != nil {
			b, err := json.Marshal(out)
			if err != nil {
				indexes, critical = record([]model.CalculationMessage{{
					Level:   model.LevelCritical,
					Code:    model.CodeCalculationFailed,
					Message: "Failed to encode output: " + err.Error(),
				}}, indexes)
				entry.CalculationMessageIndexes = indexes
			} else {
				entry.Output = b
			}
		}
		processed = append(processed, entry)

		if critical {
			outcome = model.OutcomeFailure
			break
		}
	}

	elapsed := time.Since(start)
	now := time.Now().UTC()

	if allMessages == nil {
		allMessages = []model.CalculationMessage{}
	}
	if processed == nil {
		processed = []model.ProcessedCalculation{}
	}

	return &model.CalculationResponse{
		CalculationMetadata: model.CalculationMetadata{
			CalculationID:          uuid.New().String(),
			SchemeID:               scheme.ID,
			CalculationStartedAt:   now.Add(-elapsed).Format(time.RFC3339),
			CalculationCompletedAt: now.Format(time.RFC3339),
			CalculationDurationMs:  elapsed.Milliseconds(),
			CalculationOutcome:     outcome,
		},
		CalculationResult: model.CalculationResult{
			Messages:     allMessages,
			Calculations: processed,
		},
	}
}
