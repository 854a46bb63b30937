package model

// OpenGraph holds the Open Graph tags relevant to scoring. Absent tags
// are empty strings, never null.
type OpenGraph struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// TwitterCard holds the Twitter card tags of a page.
type TwitterCard struct {
	Card        string `json:"card"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Headings holds h1/h2/h3 texts in document order. Empty headings are
// skipped at extraction time.
type Headings struct {
	H1 []string `json:"h1"`
	H2 []string `json:"h2"`
	H3 []string `json:"h3"`
}

// LinkReport classifies a page's anchors by hostname. Duplicates are
// preserved in document order.
type LinkReport struct {
	Internal      []string `json:"internal"`
	External      []string `json:"external"`
	InternalCount int      `json:"internalCount"`
	ExternalCount int      `json:"externalCount"`
}

// Image is a single <img> occurrence. HasAlt is true only when the alt
// attribute is present and non-empty.
type Image struct {
	Src    string `json:"src"`
	Alt    string `json:"alt"`
	HasAlt bool   `json:"hasAlt"`
}

// ImageReport summarizes alt-text coverage.
type ImageReport struct {
	Total      int     `json:"total"`
	WithAlt    int     `json:"withAlt"`
	WithoutAlt int     `json:"withoutAlt"`
	List       []Image `json:"list"`
}

// Entity is a named person, organization, or place detected in body text.
type Entity struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// EntityReport groups detected entities per type plus a merged typed view.
// Total reflects the full deduplicated set, counted before the display
// slices are truncated.
type EntityReport struct {
	Total         int      `json:"total"`
	People        []string `json:"people"`
	Organizations []string `json:"organizations"`
	Places        []string `json:"places"`
	All           []Entity `json:"all"`
}

// ScoreFactor is one GEO sub-score with its fixed maximum.
type ScoreFactor struct {
	Factor   string `json:"factor"`
	Score    int    `json:"score"`
	MaxScore int    `json:"maxScore"`
	Status   string `json:"status"`
}

// ContentMetrics are the sentence/word statistics behind the GEO factors.
type ContentMetrics struct {
	WordCount         int `json:"wordCount"`
	SentenceCount     int `json:"sentenceCount"`
	AvgSentenceLength int `json:"avgSentenceLength"`
}

// GeoAnalysis is the Generative Engine Optimization block of a result.
type GeoAnalysis struct {
	AIReadinessScore int            `json:"aiReadinessScore"`
	AIRankingScore   int            `json:"aiRankingScore"`
	Factors          []ScoreFactor  `json:"factors"`
	Entities         EntityReport   `json:"entities"`
	ContentMetrics   ContentMetrics `json:"contentMetrics"`
	Recommendations  []string       `json:"recommendations"`
}

// AIInsights carries the optional free-text output of the LLM
// collaborator. It is not part of the deterministic core; results are
// complete and valid with this field nil.
type AIInsights struct {
	Summary     string   `json:"summary"`
	Suggestions []string `json:"suggestions"`
}

// AnalysisResult is the externally visible output of one analysis. It is
// constructed fresh per request and never persisted by the core; field
// names and nesting are the contract consumed by storage and export.
type AnalysisResult struct {
	URL             string      `json:"url"`
	Title           string      `json:"title"`
	MetaDescription string      `json:"metaDescription"`
	MetaKeywords    string      `json:"metaKeywords"`
	OpenGraph       OpenGraph   `json:"openGraph"`
	Twitter         TwitterCard `json:"twitter"`
	Headings        Headings    `json:"headings"`
	Links           LinkReport  `json:"links"`
	Images          ImageReport `json:"images"`
	SEOScore        int         `json:"seoScore"`
	Issues          []string    `json:"issues"`
	Recommendations []string    `json:"recommendations"`
	Geo             GeoAnalysis `json:"geo"`
	AIInsights      *AIInsights `json:"aiInsights,omitempty"`
}
