package entity

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestExtract_Honorifics(t *testing.T) {
	report := Extract("Yesterday Dr. Jane Smith presented the findings. Later Mr. John Doe disagreed.")

	if len(report.People) < 2 {
		t.Fatalf("expected at least 2 people, got %v", report.People)
	}
	found := map[string]bool{}
	for _, p := range report.People {
		found[p] = true
	}
	if !found["Jane Smith"] || !found["John Doe"] {
		t.Fatalf("expected Jane Smith and John Doe, got %v", report.People)
	}
}

func TestExtract_OrganizationSuffixes(t *testing.T) {
	report := Extract("Acme Corp announced a partnership with Globex Corporation and Initech LLC.")

	joined := strings.Join(report.Organizations, "|")
	for _, want := range []string{"Acme Corp", "Globex Corporation", "Initech LLC"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected organization %q, got %v", want, report.Organizations)
		}
	}
}

func TestExtract_AcronymStopList(t *testing.T) {
	report := Extract("Improve your SEO and HTML with the NASA API over HTTP.")

	for _, org := range report.Organizations {
		switch org {
		case "SEO", "HTML", "API", "HTTP":
			t.Fatalf("stop-listed acronym %q classified as organization", org)
		}
	}
	found := false
	for _, org := range report.Organizations {
		if org == "NASA" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected NASA as organization, got %v", report.Organizations)
	}
}

func TestExtract_Places(t *testing.T) {
	report := Extract("The conference was held in Berlin with attendees from Tokyo and teams across the USA.")

	joined := strings.Join(report.Places, "|")
	for _, want := range []string{"Berlin", "Tokyo", "USA"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected place %q, got %v", want, report.Places)
		}
	}
}

func TestExtract_PhraseStopWords(t *testing.T) {
	report := Extract("The Best Widgets are made in January Sales events. This Great Thing happened on Monday Morning.")

	for _, p := range report.People {
		first := strings.Fields(p)[0]
		switch first {
		case "The", "This", "January", "Monday":
			t.Fatalf("stop-word phrase %q classified as person", p)
		}
	}
}

func TestDedupeCaseInsensitive(t *testing.T) {
	in := []string{"Jane Smith", "JANE SMITH", "jane smith", "John Doe"}
	out := DedupeCaseInsensitive(in)

	if len(out) != 2 {
		t.Fatalf("expected 2 unique names, got %v", out)
	}
	// First occurrence wins, preserving its casing and position.
	if out[0] != "Jane Smith" || out[1] != "John Doe" {
		t.Fatalf("unexpected order or casing: %v", out)
	}
}

func TestExtract_CrossTypeDedup(t *testing.T) {
	// "Acme Corp" matches both the org suffix and the generic capitalized
	// phrase pattern; it must only be reported once.
	report := Extract("Acme Corp builds widgets. Acme Corp is based in Denver.")

	count := 0
	for _, e := range report.All {
		if strings.EqualFold(e.Name, "Acme Corp") {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected Acme Corp exactly once in merged list, got %d (%v)", count, report.All)
	}
}

func TestExtract_TextLimit(t *testing.T) {
	// Pad well past the limit, then mention a name that must be ignored.
	padding := strings.Repeat("word ", DefaultTextLimit/5)
	text := padding + " Dr. Far Away spoke."

	report := Extract(text)
	for _, p := range report.People {
		if p == "Far Away" {
			t.Fatalf("entity beyond the text limit was extracted: %v", report.People)
		}
	}
}

func TestExtractWithOptions_DisplayCapsAndTotal(t *testing.T) {
	text := "Mr. Alan One met Ms. Beth Two, Dr. Carl Three, Mr. Dave Four, Ms. Erin Five, and Dr. Fred Six in Paris."

	report := ExtractWithOptions(text, Options{DisplayPerType: 3})

	if len(report.People) > 3 {
		t.Fatalf("display cap exceeded: %v", report.People)
	}
	// Total counts the full deduplicated set before truncation.
	if report.Total <= 3 {
		t.Fatalf("expected total above display cap, got %d", report.Total)
	}
}

func TestExtract_MergedCap(t *testing.T) {
	var sb strings.Builder
	for _, name := range []string{
		"Alan Abbot", "Beth Baker", "Carl Cooper", "Dave Dalton", "Erin Ellis",
		"Fred Foster", "Gina Garner", "Hank Harper", "Iris Irwin", "Jack Jensen",
	} {
		sb.WriteString("Dr. " + name + " attended. ")
	}
	sb.WriteString("They met Acme Corp, Globex Corporation, Initech LLC, Umbrella Inc, and Stark Industries Group in Berlin, in Tokyo, in Madrid, in Oslo. ")

	report := ExtractWithOptions(sb.String(), Options{RawPerType: 20, DisplayPerType: 20})

	if len(report.All) > DefaultMergedCap {
		t.Fatalf("merged list exceeds cap: %d", len(report.All))
	}
	if report.Total <= DefaultMergedCap {
		t.Fatalf("expected total above merged cap, got %d", report.Total)
	}
}

func TestTruncateText_NeverSplitsRunes(t *testing.T) {
	text := strings.Repeat("分", 10) // 3 bytes per rune

	for limit := 1; limit <= len(text); limit++ {
		out := truncateText(text, limit)
		if len(out) > limit {
			t.Fatalf("limit %d: output is %d bytes", limit, len(out))
		}
		if !utf8.ValidString(out) {
			t.Fatalf("limit %d: truncation split a rune: %q", limit, out)
		}
	}

	if got := truncateText("short", 100); got != "short" {
		t.Fatalf("text under the limit must pass through, got %q", got)
	}
}

func TestExtract_EmptyText(t *testing.T) {
	report := Extract("")
	if report.Total != 0 {
		t.Fatalf("expected 0 entities, got %d", report.Total)
	}
	if report.People == nil || report.Organizations == nil || report.Places == nil || report.All == nil {
		t.Fatal("entity slices must be non-nil for JSON encoding")
	}
}
