package seo

import (
	"strings"
	"testing"

	"optigenius/internal/markup"
	"optigenius/internal/model"
)

func perfectDoc() *markup.Document {
	return &markup.Document{
		Title:           strings.Repeat("t", 45),
		MetaDescription: strings.Repeat("d", 140),
		OpenGraph: model.OpenGraph{
			Title:       "og title",
			Description: "og description",
			Image:       "https://example.com/og.png",
		},
		Headings: model.Headings{
			H1: []string{"Main"},
			H2: []string{"Section A", "Section B"},
			H3: []string{"Detail"},
		},
		InternalLinks: []string{"a", "b", "c", "d", "e"},
		Images: []model.Image{
			{Src: "/a.png", Alt: "a", HasAlt: true},
			{Src: "/b.png", Alt: "b", HasAlt: true},
		},
	}
}

func TestScore_PerfectPage(t *testing.T) {
	res := Score(perfectDoc())

	if res.Score != 100 {
		t.Fatalf("expected score 100, got %d", res.Score)
	}
	if len(res.Issues) != 0 {
		t.Fatalf("expected no issues, got %v", res.Issues)
	}
	if len(res.Recommendations) != 0 {
		t.Fatalf("expected no recommendations, got %v", res.Recommendations)
	}
}

func TestScore_EmptyDocument(t *testing.T) {
	res := Score(&markup.Document{})

	if res.Score != 0 {
		t.Fatalf("expected score 0, got %d", res.Score)
	}
	// Title, meta description, H1, H2, internal links, Open Graph. No
	// image issue when there are no images, no H3 issue ever.
	if len(res.Issues) != 6 {
		t.Fatalf("expected 6 issues, got %d: %v", len(res.Issues), res.Issues)
	}
	if len(res.Recommendations) != len(res.Issues) {
		t.Fatalf("issues and recommendations must pair up: %d vs %d",
			len(res.Issues), len(res.Recommendations))
	}
}

func TestScore_TitleBoundaries(t *testing.T) {
	cases := []struct {
		name      string
		titleLen  int
		wantFull  bool
		wantIssue bool
	}{
		{"lower bound", 30, true, false},
		{"upper bound", 60, true, false},
		{"just under", 29, false, true},
		{"just over", 61, false, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := perfectDoc()
			doc.Title = strings.Repeat("x", tc.titleLen)
			res := Score(doc)

			if tc.wantFull && res.Score != 100 {
				t.Fatalf("expected 100 for title length %d, got %d", tc.titleLen, res.Score)
			}
			if !tc.wantFull && res.Score != 90 {
				// 10 of 20 title points.
				t.Fatalf("expected 90 for title length %d, got %d", tc.titleLen, res.Score)
			}

			hasIssue := false
			for _, iss := range res.Issues {
				if strings.Contains(iss, "Title length") {
					hasIssue = true
				}
			}
			if hasIssue != tc.wantIssue {
				t.Fatalf("title issue presence = %v, want %v", hasIssue, tc.wantIssue)
			}
		})
	}
}

func TestScore_MultipleH1(t *testing.T) {
	doc := perfectDoc()
	doc.Headings.H1 = []string{"One", "Two", "Three"}
	res := Score(doc)

	// 8 of 15 H1 points.
	if res.Score != 93 {
		t.Fatalf("expected 93, got %d", res.Score)
	}
	found := false
	for _, iss := range res.Issues {
		if iss == "Multiple H1 tags found (3)" {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing multiple-H1 issue, got %v", res.Issues)
	}
}

func TestScore_ImageAltCoverage(t *testing.T) {
	doc := perfectDoc()
	doc.Images = []model.Image{
		{Src: "/a.png", Alt: "a", HasAlt: true},
		{Src: "/b.png", HasAlt: false},
	}
	res := Score(doc)

	// Half coverage earns 5 of 10 points plus an issue.
	if res.Score != 95 {
		t.Fatalf("expected 95, got %d", res.Score)
	}
	found := false
	for _, iss := range res.Issues {
		if iss == "1 of 2 images missing alt text" {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing alt-text issue, got %v", res.Issues)
	}
}

func TestScore_InternalLinkTiers(t *testing.T) {
	doc := perfectDoc()
	doc.InternalLinks = []string{"a", "b"}
	res := Score(doc)
	if res.Score != 95 {
		t.Fatalf("expected 95 for limited linking, got %d", res.Score)
	}

	doc.InternalLinks = nil
	res = Score(doc)
	if res.Score != 90 {
		t.Fatalf("expected 90 for no internal links, got %d", res.Score)
	}
	found := false
	for _, iss := range res.Issues {
		if iss == "No internal links found" {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing no-internal-links issue, got %v", res.Issues)
	}
}

func TestScore_PartialOpenGraph(t *testing.T) {
	doc := perfectDoc()
	doc.OpenGraph = model.OpenGraph{Title: "only title"}
	res := Score(doc)

	if res.Score != 95 {
		t.Fatalf("expected 95 for partial open graph, got %d", res.Score)
	}
	found := false
	for _, iss := range res.Issues {
		if iss == "Incomplete Open Graph tags" {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing incomplete-OG issue, got %v", res.Issues)
	}
}

func TestScore_MultibyteLengthsCountCharacters(t *testing.T) {
	doc := perfectDoc()
	// 35 CJK characters are 105 bytes; the band must see 35.
	doc.Title = strings.Repeat("分", 35)
	doc.MetaDescription = strings.Repeat("析", 140)

	res := Score(doc)
	if res.Score != 100 {
		t.Fatalf("expected 100 for in-band multibyte metadata, got %d", res.Score)
	}
	for _, iss := range res.Issues {
		if strings.Contains(iss, "Title length") || strings.Contains(iss, "Meta description is") {
			t.Fatalf("false length issue for multibyte text: %q", iss)
		}
	}
}

func TestScore_Deterministic(t *testing.T) {
	doc := perfectDoc()
	doc.Title = "short"
	first := Score(doc)
	second := Score(doc)

	if first.Score != second.Score || len(first.Issues) != len(second.Issues) {
		t.Fatalf("scoring is not deterministic: %+v vs %+v", first, second)
	}
}
