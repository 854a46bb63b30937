package metrics

import (
	"strings"
	"testing"
)

func TestExport_ContainsRecordedSeries(t *testing.T) {
	RecordRequest("POST", "/v1/analyze", 200, 42)
	RecordAnalysis("", 120)
	RecordAnalysis("fetch_dns", 5)
	RecordInsights("openai", true)
	RecordEntities(7)
	RecordRetentionReports(3)

	out := Export()

	for _, want := range []string{
		`optigenius_http_requests_total{method="POST",path="/v1/analyze",status="200"}`,
		`optigenius_analyses_total{outcome="ok",kind=""}`,
		`optigenius_analyses_total{outcome="error",kind="fetch_dns"}`,
		`optigenius_insight_requests_total{provider="openai",success="true"}`,
		"optigenius_entities_extracted_total",
		"optigenius_retention_reports_deleted_total",
		"optigenius_analysis_duration_ms_sum",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("export missing series %q:\n%s", want, out)
		}
	}
}

func TestRecordEntities_IgnoresNonPositive(t *testing.T) {
	before := Export()
	RecordEntities(0)
	RecordEntities(-5)
	after := Export()

	if before != after {
		t.Fatal("non-positive counts must not change metrics")
	}
}

func TestRecordRetentionReports_IgnoresNonPositive(t *testing.T) {
	before := Export()
	RecordRetentionReports(0)
	after := Export()

	if before != after {
		t.Fatal("zero deletions must not change metrics")
	}
}
