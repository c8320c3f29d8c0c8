package operations

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"

	"bonus-tax-engine/internal/bracket"
	"bonus-tax-engine/internal/model"
	"bonus-tax-engine/internal/tax"
)

var validate = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type taxProps struct {
	MonthlySalary    float64 `json:"monthly_salary" validate:"gte=0"`
	AnnualBonus      float64 `json:"annual_bonus" validate:"gte=0"`
	MonthlyDeduction float64 `json:"monthly_deduction" validate:"gte=0"`
}

type splitProps struct {
	AnnualCompensation float64 `json:"annual_compensation" validate:"gte=0"`
	MonthlyDeduction   float64 `json:"monthly_deduction" validate:"gte=0"`
}

func critical(code, message string) model.CalculationMessage {
	return model.CalculationMessage{Level: model.LevelCritical, Code: code, Message: message}
}

func warning(code, message string) model.CalculationMessage {
	return model.CalculationMessage{Level: model.LevelWarning, Code: code, Message: message}
}

// decodeProps unmarshals and validates calculation properties into v.
// The returned messages are nil when the properties are usable.
func decodeProps(c *model.Calculation, v any) []model.CalculationMessage {
	if len(c.Properties) == 0 {
		return []model.CalculationMessage{critical(model.CodeInvalidProperties, "Calculation properties are missing")}
	}
	if err := json.Unmarshal(c.Properties, v); err != nil {
		return []model.CalculationMessage{critical(model.CodeInvalidProperties, "Invalid calculation properties: "+err.Error())}
	}
	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]model.CalculationMessage, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, critical(model.CodeInvalidInput,
					fmt.Sprintf("%s must be non-negative, got %v", fe.Field(), fe.Value())))
			}
			return msgs
		}
		return []model.CalculationMessage{critical(model.CodeInvalidInput, err.Error())}
	}
	return nil
}

// deductionWarning flags a deduction that alone pushes monthly taxable
// income below zero; the salary leg is then taxed as zero.
func deductionWarning(scheme model.TaxScheme, monthlySalary, deduction float64) []model.CalculationMessage {
	gross := monthlySalary - scheme.MonthlyStartPoint
	if deduction > 0 && gross > 0 && gross-deduction < 0 {
		return []model.CalculationMessage{warning(model.CodeDeductionExceedsSalary,
			fmt.Sprintf("Monthly deduction %v exceeds salary above the %v threshold; salary is taxed as zero", deduction, scheme.MonthlyStartPoint))}
	}
	return nil
}

// failure maps a calculation error to a CRITICAL message.
func failure(err error) []model.CalculationMessage {
	var cfgErr *bracket.ConfigError
	switch {
	case errors.As(err, &cfgErr):
		return []model.CalculationMessage{critical(model.CodeNoMatchingBracket, err.Error())}
	case errors.Is(err, tax.ErrInvalidInput):
		return []model.CalculationMessage{critical(model.CodeInvalidInput, err.Error())}
	default:
		return []model.CalculationMessage{critical(model.CodeCalculationFailed, err.Error())}
	}
}
