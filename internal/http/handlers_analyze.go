package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"optigenius/internal/analysis"
	"optigenius/internal/config"
	"optigenius/internal/metrics"
	"optigenius/internal/store"
)

// analyzeHandler runs the full analysis pipeline for one URL and
// optionally persists the result as a report.
func analyzeHandler(c *fiber.Ctx) error {
	var reqBody AnalyzeRequest
	if err := c.BodyParser(&reqBody); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Success: false,
			Code:    "BAD_REQUEST_INVALID_JSON",
			Error:   "Bad request, malformed JSON",
		})
	}

	if reqBody.URL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Success: false,
			Code:    "BAD_REQUEST",
			Error:   "Missing required field 'url'",
		})
	}

	cfg := c.Locals("config").(*config.Config)
	analyzer := c.Locals("analyzer").(*analysis.Service)

	timeoutMs := cfg.Fetcher.TimeoutMs
	if timeoutMs <= 0 {
		timeoutMs = 15000
	}
	// Insights add an LLM round trip on top of the fetch.
	if reqBody.Insights {
		timeoutMs += 30000
	}

	ctx, cancel := context.WithTimeout(c.Context(), time.Duration(timeoutMs)*time.Millisecond)
	defer cancel()

	start := time.Now()
	result, err := analyzer.Analyze(ctx, analysis.Request{
		URL:      reqBody.URL,
		RenderJS: reqBody.RenderJS,
		Insights: reqBody.Insights,
	})
	if err != nil {
		var analysisErr *analysis.Error
		if errors.As(err, &analysisErr) {
			metrics.RecordAnalysis(analysisErr.Kind, time.Since(start).Milliseconds())
			return c.Status(statusForKind(analysisErr.Kind)).JSON(ErrorResponse{
				Success: false,
				Code:    codeForKind(analysisErr.Kind),
				Error:   analysisErr.Message,
			})
		}
		metrics.RecordAnalysis(analysis.KindInternal, time.Since(start).Milliseconds())
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Success: false,
			Code:    "INTERNAL_ERROR",
			Error:   err.Error(),
		})
	}

	metrics.RecordAnalysis("", time.Since(start).Milliseconds())
	metrics.RecordEntities(result.Geo.Entities.Total)

	resp := AnalyzeResponse{Success: true, Data: result}

	if reqBody.Save {
		stVal := c.Locals("store")
		if stVal == nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{
				Success: false,
				Code:    "STORAGE_UNAVAILABLE",
				Error:   "Report storage is not configured",
			})
		}
		st := stVal.(*store.Store)
		id, err := st.SaveReport(c.Context(), userID(c), result)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
				Success: false,
				Code:    "REPORT_SAVE_FAILED",
				Error:   err.Error(),
			})
		}
		resp.ReportID = id.String()
	}

	return c.JSON(resp)
}

// statusForKind maps analysis error kinds onto HTTP status codes. Fetch
// failures are upstream problems, so they map to gateway statuses.
func statusForKind(kind string) int {
	switch kind {
	case analysis.KindValidation:
		return fiber.StatusBadRequest
	case analysis.KindFetchTimeout:
		return fiber.StatusGatewayTimeout
	case analysis.KindFetchDNS, analysis.KindFetchRefused, analysis.KindFetchStatus, analysis.KindFetchGeneric:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func codeForKind(kind string) string {
	switch kind {
	case analysis.KindValidation:
		return "INVALID_URL"
	case analysis.KindFetchDNS:
		return "FETCH_DNS_FAILED"
	case analysis.KindFetchTimeout:
		return "FETCH_TIMEOUT"
	case analysis.KindFetchRefused:
		return "FETCH_REFUSED"
	case analysis.KindFetchStatus:
		return "FETCH_BAD_STATUS"
	case analysis.KindFetchGeneric:
		return "FETCH_FAILED"
	default:
		return "INTERNAL_ERROR"
	}
}
