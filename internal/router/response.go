package router

import (
	"github.com/prescottcassy/insurance-assistant/constants"
	"github.com/prescottcassy/insurance-assistant/internal/dataset"
	"github.com/prescottcassy/insurance-assistant/internal/extract"
)

// Response is the uniform structured answer for every routed query.
// Answer is set on every reachable path; Confidence is 1.0 for deterministic
// matches and 0.5 only for the unrecognized-intent fallback.
type Response struct {
	Answer          string            `json:"answer"`
	Entities        map[string]string `json:"entities"`
	Recommendations []string          `json:"recommendations"`
	Coverage        []dataset.Row     `json:"coverage"`
	ExtractedText   string            `json:"extracted_text,omitempty"`
	Confidence      float32           `json:"confidence"`
	PatientInfo     map[string]string `json:"patient_info,omitempty"`

	Intent constants.Intent `json:"-"`
}

func newResponse(intent constants.Intent) Response {
	return Response{
		Entities:        map[string]string{},
		Recommendations: []string{},
		Confidence:      1.0,
		Intent:          intent,
	}
}

// Context is the optional per-query bundle of reference sources. The router
// never persists or merges contexts across calls.
type Context struct {
	CardFields extract.FieldMap
	Dataset    *dataset.Table
	Documents  []string
}
