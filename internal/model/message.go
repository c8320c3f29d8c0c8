package model

type CalculationMessage struct {
	ID      int    `json:"id"`
	Level   string `json:"level"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	LevelCritical = "CRITICAL"
	LevelWarning  = "WARNING"
)

const (
	CodeUnknownOperation       = "UNKNOWN_OPERATION"
	CodeInvalidScheme          = "INVALID_SCHEME"
	CodeInvalidProperties      = "INVALID_PROPERTIES"
	CodeInvalidInput           = "INVALID_INPUT"
	CodeNoMatchingBracket      = "NO_MATCHING_BRACKET"
	CodeDeductionExceedsSalary = "DEDUCTION_EXCEEDS_SALARY"
	CodeCalculationFailed      = "CALCULATION_FAILED"
)
