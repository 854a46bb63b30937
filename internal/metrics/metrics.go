package metrics

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Simple Prometheus-style metrics for HTTP requests and the analysis
// pipeline. This is intentionally minimal and in-memory only.

var (
	mu             sync.RWMutex
	requestsTotal  = make(map[reqKey]int64)
	latencyMsSum   = make(map[latKey]int64)
	latencyMsCount = make(map[latKey]int64)

	analysesTotal     = make(map[analysisKey]int64)
	analysisMsSum     int64
	analysisMsCount   int64
	insightRequests   = make(map[insightKey]int64)
	retentionReports  int64
	entitiesExtracted int64
)

type reqKey struct {
	Method string
	Path   string
	Status int
}

type latKey struct {
	Method string
	Path   string
}

// analysisKey labels an analysis outcome: "ok" carries an empty kind,
// failures carry the error kind.
type analysisKey struct {
	Outcome string
	Kind    string
}

type insightKey struct {
	Provider string
	Success  string
}

// RecordRequest increments request counter and records latency.
func RecordRequest(method, path string, status int, latencyMs int64) {
	mu.Lock()
	defer mu.Unlock()

	rk := reqKey{Method: method, Path: path, Status: status}
	requestsTotal[rk]++

	lk := latKey{Method: method, Path: path}
	latencyMsSum[lk] += latencyMs
	latencyMsCount[lk]++
}

// RecordAnalysis records one analysis run. errKind is empty on success.
func RecordAnalysis(errKind string, durationMs int64) {
	mu.Lock()
	defer mu.Unlock()

	outcome := "ok"
	if errKind != "" {
		outcome = "error"
	}
	analysesTotal[analysisKey{Outcome: outcome, Kind: errKind}]++
	analysisMsSum += durationMs
	analysisMsCount++
}

// RecordInsights increments the LLM insights counter.
func RecordInsights(provider string, success bool) {
	mu.Lock()
	defer mu.Unlock()

	s := "false"
	if success {
		s = "true"
	}
	insightRequests[insightKey{Provider: provider, Success: s}]++
}

// RecordEntities adds to the running count of extracted entities.
func RecordEntities(count int) {
	if count <= 0 {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	entitiesExtracted += int64(count)
}

// RecordRetentionReports increments the counter of reports deleted by
// TTL cleanup.
func RecordRetentionReports(deleted int64) {
	if deleted <= 0 {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	retentionReports += deleted
}

// Export returns Prometheus-style metrics text.
func Export() string {
	mu.RLock()
	defer mu.RUnlock()

	var b strings.Builder

	b.WriteString("# HELP optigenius_http_requests_total Total HTTP requests\n")
	b.WriteString("# TYPE optigenius_http_requests_total counter\n")

	// Sort keys for stable output
	var reqKeys []reqKey
	for k := range requestsTotal {
		reqKeys = append(reqKeys, k)
	}
	sort.Slice(reqKeys, func(i, j int) bool {
		if reqKeys[i].Method != reqKeys[j].Method {
			return reqKeys[i].Method < reqKeys[j].Method
		}
		if reqKeys[i].Path != reqKeys[j].Path {
			return reqKeys[i].Path < reqKeys[j].Path
		}
		return reqKeys[i].Status < reqKeys[j].Status
	})

	for _, k := range reqKeys {
		fmt.Fprintf(&b, "optigenius_http_requests_total{method=\"%s\",path=\"%s\",status=\"%d\"} %d\n",
			k.Method, k.Path, k.Status, requestsTotal[k])
	}

	b.WriteString("# HELP optigenius_http_request_duration_ms_sum Total request duration in milliseconds\n")
	b.WriteString("# TYPE optigenius_http_request_duration_ms_sum counter\n")
	b.WriteString("# HELP optigenius_http_request_duration_ms_count Request count for latency metric\n")
	b.WriteString("# TYPE optigenius_http_request_duration_ms_count counter\n")

	var latKeys []latKey
	for k := range latencyMsSum {
		latKeys = append(latKeys, k)
	}
	sort.Slice(latKeys, func(i, j int) bool {
		if latKeys[i].Method != latKeys[j].Method {
			return latKeys[i].Method < latKeys[j].Method
		}
		return latKeys[i].Path < latKeys[j].Path
	})

	for _, k := range latKeys {
		fmt.Fprintf(&b, "optigenius_http_request_duration_ms_sum{method=\"%s\",path=\"%s\"} %d\n",
			k.Method, k.Path, latencyMsSum[k])
		fmt.Fprintf(&b, "optigenius_http_request_duration_ms_count{method=\"%s\",path=\"%s\"} %d\n",
			k.Method, k.Path, latencyMsCount[k])
	}

	b.WriteString("# HELP optigenius_analyses_total Total page analyses by outcome\n")
	b.WriteString("# TYPE optigenius_analyses_total counter\n")

	var anKeys []analysisKey
	for k := range analysesTotal {
		anKeys = append(anKeys, k)
	}
	sort.Slice(anKeys, func(i, j int) bool {
		if anKeys[i].Outcome != anKeys[j].Outcome {
			return anKeys[i].Outcome < anKeys[j].Outcome
		}
		return anKeys[i].Kind < anKeys[j].Kind
	})

	for _, k := range anKeys {
		fmt.Fprintf(&b, "optigenius_analyses_total{outcome=\"%s\",kind=\"%s\"} %d\n",
			k.Outcome, k.Kind, analysesTotal[k])
	}

	b.WriteString("# HELP optigenius_analysis_duration_ms_sum Total analysis duration in milliseconds\n")
	b.WriteString("# TYPE optigenius_analysis_duration_ms_sum counter\n")
	fmt.Fprintf(&b, "optigenius_analysis_duration_ms_sum %d\n", analysisMsSum)
	b.WriteString("# HELP optigenius_analysis_duration_ms_count Analysis count for duration metric\n")
	b.WriteString("# TYPE optigenius_analysis_duration_ms_count counter\n")
	fmt.Fprintf(&b, "optigenius_analysis_duration_ms_count %d\n", analysisMsCount)

	b.WriteString("# HELP optigenius_insight_requests_total Total LLM insight requests\n")
	b.WriteString("# TYPE optigenius_insight_requests_total counter\n")

	var insKeys []insightKey
	for k := range insightRequests {
		insKeys = append(insKeys, k)
	}
	sort.Slice(insKeys, func(i, j int) bool {
		if insKeys[i].Provider != insKeys[j].Provider {
			return insKeys[i].Provider < insKeys[j].Provider
		}
		return insKeys[i].Success < insKeys[j].Success
	})

	for _, k := range insKeys {
		fmt.Fprintf(&b, "optigenius_insight_requests_total{provider=\"%s\",success=\"%s\"} %d\n",
			k.Provider, k.Success, insightRequests[k])
	}

	b.WriteString("# HELP optigenius_entities_extracted_total Total entities detected across analyses\n")
	b.WriteString("# TYPE optigenius_entities_extracted_total counter\n")
	fmt.Fprintf(&b, "optigenius_entities_extracted_total %d\n", entitiesExtracted)

	b.WriteString("# HELP optigenius_retention_reports_deleted_total Reports deleted by TTL cleanup\n")
	b.WriteString("# TYPE optigenius_retention_reports_deleted_total counter\n")
	fmt.Fprintf(&b, "optigenius_retention_reports_deleted_total %d\n", retentionReports)

	return b.String()
}
