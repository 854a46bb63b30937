package geo

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"optigenius/internal/markup"
	"optigenius/internal/model"
)

// Fixed maximums for the five AI-readiness factors. They sum to 100.
const (
	MaxClarity   = 30
	MaxStructure = 25
	MaxDensity   = 20
	MaxLength    = 15
	MaxMetadata  = 10
)

const (
	StatusExcellent = "excellent"
	StatusGood      = "good"
	StatusNeedsWork = "needs_improvement"
)

var sentenceSplitRe = regexp.MustCompile(`[.!?]+`)

// Score computes the Generative Engine Optimization block for an
// extracted document and its entity report. Like the SEO rubric it is a
// pure function and never fails; empty input simply scores low.
func Score(doc *markup.Document, entities model.EntityReport) model.GeoAnalysis {
	wordCount := len(strings.Fields(doc.BodyText))
	sentences := splitSentences(doc.BodyText)
	sentenceCount := len(sentences)

	var avgSentenceLen float64
	if sentenceCount > 0 {
		avgSentenceLen = float64(wordCount) / float64(sentenceCount)
	}

	clarity := clarityScore(avgSentenceLen, sentenceCount)
	structure := structureScore(len(doc.Headings.H1), len(doc.Headings.H2))
	density := densityScore(entities.Total)
	length := lengthScore(wordCount)
	metadata := metadataScore(doc.Title, doc.MetaDescription)

	readiness := clarity + structure + density + length + metadata
	ranking := rankingScore(readiness, entities.Total, wordCount)

	factors := []model.ScoreFactor{
		{Factor: "Sentence clarity", Score: clarity, MaxScore: MaxClarity, Status: statusFor(clarity, MaxClarity)},
		{Factor: "Content structure", Score: structure, MaxScore: MaxStructure, Status: statusFor(structure, MaxStructure)},
		{Factor: "Factual density", Score: density, MaxScore: MaxDensity, Status: statusFor(density, MaxDensity)},
		{Factor: "Content length", Score: length, MaxScore: MaxLength, Status: statusFor(length, MaxLength)},
		{Factor: "Metadata optimization", Score: metadata, MaxScore: MaxMetadata, Status: statusFor(metadata, MaxMetadata)},
	}

	return model.GeoAnalysis{
		AIReadinessScore: readiness,
		AIRankingScore:   ranking,
		Factors:          factors,
		Entities:         entities,
		ContentMetrics: model.ContentMetrics{
			WordCount:         wordCount,
			SentenceCount:     sentenceCount,
			AvgSentenceLength: int(math.Round(avgSentenceLen)),
		},
		Recommendations: recommendations(readiness, clarity, structure, metadata, avgSentenceLen, entities.Total, wordCount),
	}
}

func splitSentences(text string) []string {
	parts := sentenceSplitRe.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			sentences = append(sentences, strings.TrimSpace(p))
		}
	}
	return sentences
}

// clarityScore rewards an average sentence length of 10-25 words and
// decays linearly outside that band.
func clarityScore(avg float64, sentenceCount int) int {
	if sentenceCount == 0 {
		return 0
	}
	if avg >= 10 && avg <= 25 {
		return MaxClarity
	}
	return int(math.Round(math.Max(0, float64(MaxClarity)-2*math.Abs(avg-17))))
}

func structureScore(h1Count, h2Count int) int {
	score := 0
	if h1Count == 1 {
		score += 10
	}
	switch {
	case h2Count >= 2 && h2Count <= 8:
		score += 15
	case h2Count > 0:
		score += 8
	}
	return score
}

func densityScore(entityCount int) int {
	if s := entityCount * 2; s < MaxDensity {
		return s
	}
	return MaxDensity
}

func lengthScore(wordCount int) int {
	switch {
	case wordCount >= 300 && wordCount <= 2000:
		return MaxLength
	case wordCount > 100:
		return int(math.Round(math.Min(float64(MaxLength), float64(wordCount)/300*float64(MaxLength))))
	default:
		return 0
	}
}

func metadataScore(title, metaDescription string) int {
	score := 0
	if n := utf8.RuneCountInString(title); n >= 30 && n <= 60 {
		score += 5
	}
	if n := utf8.RuneCountInString(metaDescription); n >= 120 && n <= 160 {
		score += 5
	}
	return score
}

// rankingScore blends readiness with entity richness and content depth,
// clamped to [1,100] so even hopeless pages rank above zero.
func rankingScore(readiness, entityCount, wordCount int) int {
	entityBlend := float64(entityCount * 4)
	if entityCount >= 5 {
		entityBlend = 20
	}

	depth := float64(wordCount) / 500 * 20
	if wordCount >= 500 {
		depth = 20
	}

	ranking := int(math.Round(float64(readiness)*0.6 + entityBlend + depth))
	if ranking < 1 {
		ranking = 1
	}
	if ranking > 100 {
		ranking = 100
	}
	return ranking
}

func statusFor(score, max int) string {
	ratio := float64(score) / float64(max)
	switch {
	case ratio >= 0.8:
		return StatusExcellent
	case ratio >= 0.5:
		return StatusGood
	default:
		return StatusNeedsWork
	}
}

// recommendations applies the fixed rule set; when nothing triggers a
// single positive message is emitted.
func recommendations(readiness, clarity, structure, metadata int, avgSentenceLen float64, entityCount, wordCount int) []string {
	recs := make([]string, 0, 6)

	if readiness < 70 {
		recs = append(recs, "Improve overall AI readiness so answer engines can cite this content with confidence")
	}
	if statusFor(clarity, MaxClarity) != StatusExcellent {
		if avgSentenceLen > 25 {
			recs = append(recs, "Shorten long sentences; aim for 10-25 words per sentence")
		} else {
			recs = append(recs, "Expand very short sentences into fuller statements of 10-25 words")
		}
	}
	if structure < 20 {
		recs = append(recs, "Add more H2 subheadings to break the content into clear sections (2-8 works best)")
	}
	if entityCount < 5 {
		recs = append(recs, "Mention more specific people, organizations, and places to increase factual density")
	}
	if wordCount < 300 {
		recs = append(recs, "Expand the content; pages under 300 words are rarely cited by AI engines")
	}
	if metadata < 8 {
		recs = append(recs, "Optimize the title (30-60 characters) and meta description (120-160 characters)")
	}

	if len(recs) == 0 {
		recs = append(recs, "Content is well optimized for AI-powered answer engines")
	}
	return recs
}
