package model

import json "github.com/goccy/go-json"

type CalculationRequest struct {
	SchemeID     string        `json:"scheme_id"`
	Calculations []Calculation `json:"calculations"`
}

type Calculation struct {
	CalculationID string          `json:"calculation_id"`
	Operation     string          `json:"operation"`
	Properties    json.RawMessage `json:"properties"`
}
