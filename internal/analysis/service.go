package analysis

import (
	"context"
	"log/slog"
	"time"

	"optigenius/internal/entity"
	"optigenius/internal/fetcher"
	"optigenius/internal/geo"
	"optigenius/internal/markup"
	"optigenius/internal/model"
	"optigenius/internal/seo"
)

// Request carries the parameters for one analysis run.
type Request struct {
	URL string
	// RenderJS switches fetching to the browser-backed fetcher so
	// client-rendered pages are analyzed after hydration.
	RenderJS bool
	// Insights asks the optional LLM collaborator for a narrative
	// summary. Failures there never fail the analysis.
	Insights bool
}

// InsightsProvider produces the optional AI narrative for a finished
// result. Implementations live outside the deterministic pipeline.
type InsightsProvider interface {
	Generate(ctx context.Context, result *model.AnalysisResult, html string) (*model.AIInsights, error)
}

// Service runs the full pipeline: normalize, fetch, extract, score,
// assemble. It owns no state beyond its collaborators and is safe for
// concurrent use.
type Service struct {
	httpFetcher fetcher.Fetcher
	rodFetcher  fetcher.Fetcher
	insights    InsightsProvider
	entityOpts  entity.Options
	logger      *slog.Logger
}

// NewService wires the pipeline. rodFetcher and insights may be nil;
// the corresponding request flags are then ignored or degraded.
func NewService(httpFetcher, rodFetcher fetcher.Fetcher, insights InsightsProvider, entityOpts entity.Options, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		httpFetcher: httpFetcher,
		rodFetcher:  rodFetcher,
		insights:    insights,
		entityOpts:  entityOpts,
		logger:      logger,
	}
}

// Analyze runs one URL through the pipeline and returns the assembled
// result. All failures come back as *Error with a kind and stage.
func (s *Service) Analyze(ctx context.Context, req Request) (*model.AnalysisResult, error) {
	start := time.Now()

	normalized, err := fetcher.NormalizeURL(req.URL)
	if err != nil {
		return nil, validationError(err.Error(), err)
	}

	f := s.httpFetcher
	if req.RenderJS && s.rodFetcher != nil {
		f = s.rodFetcher
	}

	fetched, err := f.Fetch(ctx, normalized)
	if err != nil {
		s.logger.Warn("fetch failed", "url", normalized, "error", err)
		return nil, classifyFetchError(err)
	}

	doc, err := markup.Extract(fetched.HTML, fetched.FinalURL)
	if err != nil {
		return nil, &Error{Kind: KindInternal, Stage: StageParsing, Message: "failed to parse page", Err: err}
	}

	entities := entity.ExtractWithOptions(doc.BodyText, s.entityOpts)
	seoRes := seo.Score(doc)
	geoRes := geo.Score(doc, entities)

	result := assemble(fetched.FinalURL, doc, seoRes, geoRes)

	if req.Insights && s.insights != nil {
		ins, err := s.insights.Generate(ctx, result, fetched.HTML)
		if err != nil {
			// Insights are best effort; the deterministic result stands.
			s.logger.Warn("insights generation failed", "url", normalized, "error", err)
		} else {
			result.AIInsights = ins
		}
	}

	s.logger.Info("analysis complete",
		"url", normalized,
		"seo_score", result.SEOScore,
		"ai_readiness", result.Geo.AIReadinessScore,
		"duration_ms", time.Since(start).Milliseconds())

	return result, nil
}

// assemble builds the wire-shaped result from the pipeline pieces.
func assemble(finalURL string, doc *markup.Document, seoRes seo.Result, geoRes model.GeoAnalysis) *model.AnalysisResult {
	withAlt := 0
	for _, img := range doc.Images {
		if img.HasAlt {
			withAlt++
		}
	}

	return &model.AnalysisResult{
		URL:             finalURL,
		Title:           doc.Title,
		MetaDescription: doc.MetaDescription,
		MetaKeywords:    doc.MetaKeywords,
		OpenGraph:       doc.OpenGraph,
		Twitter:         doc.Twitter,
		Headings:        doc.Headings,
		Links: model.LinkReport{
			Internal:      doc.InternalLinks,
			External:      doc.ExternalLinks,
			InternalCount: len(doc.InternalLinks),
			ExternalCount: len(doc.ExternalLinks),
		},
		Images: model.ImageReport{
			Total:      len(doc.Images),
			WithAlt:    withAlt,
			WithoutAlt: len(doc.Images) - withAlt,
			List:       doc.Images,
		},
		SEOScore:        seoRes.Score,
		Issues:          seoRes.Issues,
		Recommendations: seoRes.Recommendations,
		Geo:             geoRes,
	}
}
