package markup

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"optigenius/internal/model"
)

// Document is the structured view of one fetched page. All text fields
// are whitespace-collapsed and trimmed; absent tags become empty
// strings, never errors. BodyText is scoring input only and is not
// exposed in API responses.
type Document struct {
	SourceURL       string
	Title           string
	MetaDescription string
	MetaKeywords    string
	OpenGraph       model.OpenGraph
	Twitter         model.TwitterCard
	Headings        model.Headings
	InternalLinks   []string
	ExternalLinks   []string
	Images          []model.Image
	BodyText        string
}

// Extract parses raw HTML into a Document. Link hrefs are resolved
// against finalURL; unresolvable hrefs are dropped silently. The
// transformation is pure: no network access, no scoring.
func Extract(htmlStr, finalURL string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	base, err := url.Parse(finalURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	baseHost := strings.ToLower(base.Hostname())

	// Script and style bodies are not visible text and would pollute
	// word counts and entity extraction.
	doc.Find("script, style, noscript").Remove()

	out := &Document{
		SourceURL:       finalURL,
		Title:           collapse(doc.Find("title").First().Text()),
		MetaDescription: collapse(doc.Find("meta[name='description']").AttrOr("content", "")),
		MetaKeywords:    collapse(doc.Find("meta[name='keywords']").AttrOr("content", "")),
		OpenGraph: model.OpenGraph{
			Title:       collapse(doc.Find("meta[property='og:title']").AttrOr("content", "")),
			Description: collapse(doc.Find("meta[property='og:description']").AttrOr("content", "")),
			Image:       collapse(doc.Find("meta[property='og:image']").AttrOr("content", "")),
		},
		Twitter: model.TwitterCard{
			Card:        collapse(doc.Find("meta[name='twitter:card']").AttrOr("content", "")),
			Title:       collapse(doc.Find("meta[name='twitter:title']").AttrOr("content", "")),
			Description: collapse(doc.Find("meta[name='twitter:description']").AttrOr("content", "")),
		},
		Headings: model.Headings{
			H1: headingTexts(doc, "h1"),
			H2: headingTexts(doc, "h2"),
			H3: headingTexts(doc, "h3"),
		},
		InternalLinks: make([]string, 0),
		ExternalLinks: make([]string, 0),
		Images:        make([]model.Image, 0),
	}

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href := strings.TrimSpace(sel.AttrOr("href", ""))
		if href == "" || strings.ContainsAny(href, " \t\n") {
			return
		}
		linkURL, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := base.ResolveReference(linkURL)
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return
		}
		if resolved.Hostname() == "" {
			return
		}
		// Duplicates are kept on purpose; link counts feed the rubric.
		if strings.EqualFold(resolved.Hostname(), baseHost) {
			out.InternalLinks = append(out.InternalLinks, resolved.String())
		} else {
			out.ExternalLinks = append(out.ExternalLinks, resolved.String())
		}
	})

	doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		alt := collapse(sel.AttrOr("alt", ""))
		out.Images = append(out.Images, model.Image{
			Src:    sel.AttrOr("src", ""),
			Alt:    alt,
			HasAlt: alt != "",
		})
	})

	out.BodyText = collapse(doc.Find("body").Text())

	return out, nil
}

func headingTexts(doc *goquery.Document, tag string) []string {
	texts := make([]string, 0)
	doc.Find(tag).Each(func(_ int, sel *goquery.Selection) {
		if t := collapse(sel.Text()); t != "" {
			texts = append(texts, t)
		}
	})
	return texts
}

// collapse trims the string and folds consecutive whitespace into
// single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
