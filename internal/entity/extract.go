package entity

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"optigenius/internal/model"
)

// Extraction bounds. Raw matches are capped per type before
// deduplication; the per-type and merged lists returned to callers are
// previews, while Total counts the full deduplicated set.
const (
	DefaultTextLimit      = 4000
	DefaultRawPerType     = 10
	DefaultDisplayPerType = 5
	DefaultMergedCap      = 15
)

// Options overrides the default extraction bounds. Zero values keep the
// defaults.
type Options struct {
	TextLimit      int
	RawPerType     int
	DisplayPerType int
	MergedCap      int
}

var (
	honorificRe = regexp.MustCompile(`\b(?:Mr|Mrs|Ms|Dr|Prof|Professor|President|Sir)\.?\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+){0,2})`)
	personRe    = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+){1,2})\b`)
	orgSuffixRe = regexp.MustCompile(`\b((?:[A-Z][A-Za-z0-9&]*\s+){0,3}[A-Z][A-Za-z0-9&]*\s+(?:Inc\.?|LLC|Ltd\.?|Corp\.?|Corporation|Company|Foundation|Institute|University|Group|Labs|Technologies|Systems|Partners|Association|Agency))\b`)
	acronymRe   = regexp.MustCompile(`\b([A-Z]{2,6})\b`)
	placePrepRe = regexp.MustCompile(`\b(?:in|at|from|near|across)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)\b`)
)

// acronyms that are markup or industry jargon rather than organizations.
var acronymStop = map[string]struct{}{
	"AI": {}, "API": {}, "CEO": {}, "CSS": {}, "CTO": {}, "FAQ": {},
	"GEO": {}, "HTML": {}, "HTTP": {}, "HTTPS": {}, "ID": {}, "LLM": {},
	"OK": {}, "PDF": {}, "SEO": {}, "TV": {}, "URL": {}, "XML": {},
}

// country/region acronyms classified as places rather than organizations.
var placeAcronyms = map[string]struct{}{
	"USA": {}, "UK": {}, "EU": {}, "UAE": {},
}

// leading words that signal a capitalized phrase is ordinary prose, not
// a name.
var phraseStop = map[string]struct{}{
	"The": {}, "This": {}, "That": {}, "These": {}, "Those": {},
	"Our": {}, "Your": {}, "His": {}, "Her": {}, "Their": {}, "Its": {},
	"New": {}, "More": {}, "Most": {}, "Many": {}, "Some": {}, "Every": {},
	"January": {}, "February": {}, "March": {}, "April": {}, "May": {},
	"June": {}, "July": {}, "August": {}, "September": {}, "October": {},
	"November": {}, "December": {},
	"Monday": {}, "Tuesday": {}, "Wednesday": {}, "Thursday": {},
	"Friday": {}, "Saturday": {}, "Sunday": {},
}

// Extract runs entity extraction with the default bounds.
func Extract(bodyText string) model.EntityReport {
	return ExtractWithOptions(bodyText, Options{})
}

// ExtractWithOptions identifies people, organizations, and places in the
// leading portion of bodyText. Each category is deduplicated
// case-insensitively with the first occurrence winning; ordering is
// extraction order.
func ExtractWithOptions(bodyText string, opts Options) model.EntityReport {
	textLimit := opts.TextLimit
	if textLimit <= 0 {
		textLimit = DefaultTextLimit
	}
	rawCap := opts.RawPerType
	if rawCap <= 0 {
		rawCap = DefaultRawPerType
	}
	displayCap := opts.DisplayPerType
	if displayCap <= 0 {
		displayCap = DefaultDisplayPerType
	}
	mergedCap := opts.MergedCap
	if mergedCap <= 0 {
		mergedCap = DefaultMergedCap
	}

	text := truncateText(bodyText, textLimit)

	// claimed tracks names already assigned to a type so the same string
	// is not reported as both an organization and a person.
	claimed := make(map[string]struct{})

	orgs := extractOrganizations(text, rawCap, claimed)
	places := extractPlaces(text, rawCap, claimed)
	people := extractPeople(text, rawCap, claimed)

	orgs = DedupeCaseInsensitive(orgs)
	places = DedupeCaseInsensitive(places)
	people = DedupeCaseInsensitive(people)

	// Merge the full deduplicated lists before any display truncation so
	// Total reflects everything that was found.
	all := make([]model.Entity, 0, len(people)+len(orgs)+len(places))
	seen := make(map[string]struct{})
	appendAll := func(kind string, names []string) {
		for _, name := range names {
			key := strings.ToLower(name)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			all = append(all, model.Entity{Type: kind, Name: name})
		}
	}
	appendAll("person", people)
	appendAll("organization", orgs)
	appendAll("place", places)

	total := len(all)
	if len(all) > mergedCap {
		all = all[:mergedCap]
	}

	return model.EntityReport{
		Total:         total,
		People:        truncate(people, displayCap),
		Organizations: truncate(orgs, displayCap),
		Places:        truncate(places, displayCap),
		All:           all,
	}
}

func extractOrganizations(text string, rawCap int, claimed map[string]struct{}) []string {
	names := make([]string, 0, rawCap)

	for _, m := range orgSuffixRe.FindAllStringSubmatch(text, rawCap) {
		name := strings.TrimSpace(m[1])
		claimed[strings.ToLower(name)] = struct{}{}
		names = append(names, name)
	}

	if len(names) < rawCap {
		for _, m := range acronymRe.FindAllStringSubmatch(text, rawCap*2) {
			acr := m[1]
			if _, stop := acronymStop[acr]; stop {
				continue
			}
			if _, isPlace := placeAcronyms[acr]; isPlace {
				continue
			}
			if _, taken := claimed[strings.ToLower(acr)]; taken {
				continue
			}
			claimed[strings.ToLower(acr)] = struct{}{}
			names = append(names, acr)
			if len(names) >= rawCap {
				break
			}
		}
	}

	return names
}

func extractPlaces(text string, rawCap int, claimed map[string]struct{}) []string {
	names := make([]string, 0, rawCap)

	add := func(name string) bool {
		key := strings.ToLower(name)
		if _, taken := claimed[key]; taken {
			return len(names) < rawCap
		}
		claimed[key] = struct{}{}
		names = append(names, name)
		return len(names) < rawCap
	}

	for _, m := range placePrepRe.FindAllStringSubmatch(text, rawCap) {
		name := strings.TrimSpace(m[1])
		if _, stop := phraseStop[firstWord(name)]; stop {
			continue
		}
		if !add(name) {
			return names
		}
	}

	for _, m := range acronymRe.FindAllStringSubmatch(text, rawCap*2) {
		if _, isPlace := placeAcronyms[m[1]]; !isPlace {
			continue
		}
		if !add(m[1]) {
			return names
		}
	}

	return names
}

func extractPeople(text string, rawCap int, claimed map[string]struct{}) []string {
	names := make([]string, 0, rawCap)

	add := func(name string) bool {
		key := strings.ToLower(name)
		if _, taken := claimed[key]; taken {
			return len(names) < rawCap
		}
		claimed[key] = struct{}{}
		names = append(names, name)
		return len(names) < rawCap
	}

	for _, m := range honorificRe.FindAllStringSubmatch(text, rawCap) {
		if !add(strings.TrimSpace(m[1])) {
			return names
		}
	}

	for _, m := range personRe.FindAllStringSubmatch(text, rawCap*3) {
		name := strings.TrimSpace(m[1])
		if _, stop := phraseStop[firstWord(name)]; stop {
			continue
		}
		if !add(name) {
			return names
		}
	}

	return names
}

// DedupeCaseInsensitive removes duplicates by case-insensitive exact
// match; the first occurrence wins and ordering is preserved.
func DedupeCaseInsensitive(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, name)
	}
	return out
}

// truncateText cuts the text at the byte limit, backing up so a
// multi-byte rune is never split.
func truncateText(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

func truncate(names []string, limit int) []string {
	if len(names) > limit {
		return names[:limit]
	}
	return names
}

func firstWord(s string) string {
	if i := strings.IndexByte(s, ' '); i > 0 {
		return s[:i]
	}
	return s
}
