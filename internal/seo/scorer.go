package seo

import (
	"fmt"
	"unicode/utf8"

	"optigenius/internal/markup"
)

// Result is the outcome of the fixed SEO rubric: an additive score
// capped at 100 plus paired issue/recommendation lists. Issues describe
// problems, recommendations describe fixes; they are always emitted
// together, in rubric order.
type Result struct {
	Score           int
	Issues          []string
	Recommendations []string
}

// Score applies the rubric to an extracted document. It is a pure
// function of the document and never fails: missing fields simply earn
// zero points.
func Score(doc *markup.Document) Result {
	res := Result{
		Issues:          make([]string, 0),
		Recommendations: make([]string, 0),
	}

	flag := func(issue, rec string) {
		res.Issues = append(res.Issues, issue)
		res.Recommendations = append(res.Recommendations, rec)
	}

	// Title: 20 points. Length bands are in characters, not bytes.
	switch n := utf8.RuneCountInString(doc.Title); {
	case n == 0:
		flag("Missing page title", "Add a descriptive page title of 30-60 characters")
	case n >= 30 && n <= 60:
		res.Score += 20
	default:
		res.Score += 10
		flag(fmt.Sprintf("Title length is %d characters (optimal: 30-60)", n),
			"Adjust the title to between 30 and 60 characters")
	}

	// Meta description: 20 points.
	switch n := utf8.RuneCountInString(doc.MetaDescription); {
	case n == 0:
		flag("Missing meta description", "Add a meta description of 120-160 characters summarizing the page")
	case n >= 120 && n <= 160:
		res.Score += 20
	default:
		res.Score += 10
		flag(fmt.Sprintf("Meta description is %d characters (optimal: 120-160)", n),
			"Adjust the meta description to between 120 and 160 characters")
	}

	// H1: 15 points, exactly one expected.
	switch n := len(doc.Headings.H1); {
	case n == 1:
		res.Score += 15
	case n == 0:
		flag("No H1 tag found", "Add a single H1 tag containing the primary topic of the page")
	default:
		res.Score += 8
		flag(fmt.Sprintf("Multiple H1 tags found (%d)", n), "Use exactly one H1 tag per page")
	}

	// H2: 10 points.
	if len(doc.Headings.H2) > 0 {
		res.Score += 10
	} else {
		flag("No H2 tags found", "Structure the content with H2 subheadings")
	}

	// H3: 5 points, no issue when absent.
	if len(doc.Headings.H3) > 0 {
		res.Score += 5
	}

	// Image alt coverage: 10 points. With zero images there is nothing
	// to fix, so no points and no issue.
	if total := len(doc.Images); total > 0 {
		withAlt := 0
		for _, img := range doc.Images {
			if img.HasAlt {
				withAlt++
			}
		}
		missing := total - withAlt
		switch {
		case missing == 0:
			res.Score += 10
		case withAlt*2 >= total:
			res.Score += 5
			flag(fmt.Sprintf("%d of %d images missing alt text", missing, total),
				"Add descriptive alt text to every image")
		default:
			flag(fmt.Sprintf("%d of %d images missing alt text", missing, total),
				"Add descriptive alt text to every image")
		}
	}

	// Internal links: 10 points.
	switch n := len(doc.InternalLinks); {
	case n >= 5:
		res.Score += 10
	case n >= 1:
		res.Score += 5
		flag("Limited internal linking", "Add more internal links (aim for at least 5)")
	default:
		flag("No internal links found", "Link to related pages on the same site")
	}

	// Open Graph completeness: 10 points.
	ogSet := 0
	for _, v := range []string{doc.OpenGraph.Title, doc.OpenGraph.Description, doc.OpenGraph.Image} {
		if v != "" {
			ogSet++
		}
	}
	switch {
	case ogSet == 3:
		res.Score += 10
	case ogSet > 0:
		res.Score += 5
		flag("Incomplete Open Graph tags", "Add og:title, og:description, and og:image tags")
	default:
		flag("Missing Open Graph tags", "Add Open Graph tags for better social sharing")
	}

	if res.Score > 100 {
		res.Score = 100
	}

	return res
}
