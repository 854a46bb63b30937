package http

import "optigenius/internal/model"

// AnalyzeRequest is the input for POST /v1/analyze.
type AnalyzeRequest struct {
	URL string `json:"url"`
	// RenderJS routes the fetch through the browser fetcher.
	RenderJS bool `json:"renderJs,omitempty"`
	// Insights requests an LLM-written narrative on top of the scores.
	Insights bool `json:"insights,omitempty"`
	// Save persists the result as a report owned by the caller.
	Save bool `json:"save,omitempty"`
}

// AnalyzeResponse wraps a successful analysis.
type AnalyzeResponse struct {
	Success  bool                  `json:"success"`
	ReportID string                `json:"reportId,omitempty"`
	Data     *model.AnalysisResult `json:"data"`
}

// ErrorResponse is the error envelope for all endpoints.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code,omitempty"`
	Error   string `json:"error"`
}
