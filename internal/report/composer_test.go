package report

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/enqinsel/seo-pulse/internal/audit"
)

func fixedComposer() *Composer {
	c := NewComposer()
	c.now = func() time.Time {
		return time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)
	}
	return c
}

func composeLines(primary SiteResult, comparisons []SiteResult) []string {
	return strings.Split(fixedComposer().Compose(primary, comparisons), "\n")
}

func indexOfLine(t *testing.T, lines []string, substr string) int {
	t.Helper()
	for i, line := range lines {
		if strings.Contains(line, substr) {
			return i
		}
	}
	t.Fatalf("no line contains %q", substr)
	return -1
}

func TestComposeFullLayout(t *testing.T) {
	primary := SiteResult{Label: "My Site", URL: "https://example.com", Score: 85, LCP: 2.5, CLS: 0.12}
	comp := SiteResult{Label: "Rival", URL: "https://rival.example", Score: 60, LCP: 4, CLS: 0.3}

	lines := composeLines(primary, []SiteResult{comp})

	require.Len(t, lines, 27)
	require.Equal(t, "╔"+strings.Repeat("═", 58)+"╗", lines[0])
	require.Equal(t, "║"+center("🚀 SEO-PULSE PERFORMANCE REPORT", 58)+"║", lines[1])
	require.Equal(t, "║"+center("15 March 2026", 58)+"║", lines[2])
	require.Equal(t, "╠"+strings.Repeat("═", 58)+"╣", lines[3])
	require.Equal(t, "║"+pad(" 📊 OUR SITE: My Site", 58)+"║", lines[4])
	require.Equal(t, "║"+pad("    URL: https://example.com", 58)+"║", lines[5])
	require.Equal(t, "║"+pad("    Performance: 85/100 | LCP: 2.5s | CLS: 0.12", 58)+"║", lines[6])
	require.Equal(t, "║"+pad(" 🏁 COMPETITOR COMPARISON", 58)+"║", lines[8])
	require.Equal(t, "║"+pad("    "+padRight("✅ Rival", 25)+" → 60 pts (25 pts behind)", 58)+"║", lines[10])
	require.Equal(t, "║"+pad(" 📋 ACTION ITEMS", 58)+"║", lines[12])
	require.Equal(t, "║"+pad("    🎉 Great! No critical issues found.", 58)+"║", lines[14])
	require.Equal(t, "╚"+strings.Repeat("═", 58)+"╝", lines[16])
	require.Equal(t, "", lines[17])
	require.Equal(t, "📈 METRIC DETAILS:", lines[18])
	require.Equal(t, strings.Repeat("─", 40), lines[19])
	require.Equal(t, summaryRow("Site", "Score", "LCP", "CLS"), lines[20])
	require.Equal(t, summaryRow("My Site", "85", "2.5", "0.12"), lines[22])
	require.Equal(t, summaryRow("Rival", "60", "4.0", "0.3"), lines[23])
	require.Equal(t, "This report was generated automatically by SEO-Pulse.", lines[26])
}

func TestComposeComparisonOutcomes(t *testing.T) {
	primary := SiteResult{Label: "Main", URL: "https://main.example", Score: 90}
	comps := []SiteResult{
		{Label: "Slow", Score: 70},
		{Label: "Fast", Score: 95},
		{Label: "Even", Score: 90},
	}

	report := fixedComposer().Compose(primary, comps)

	require.Contains(t, report, "✅ Slow")
	require.Contains(t, report, "→ 70 pts (20 pts behind)")
	require.Contains(t, report, "⚠️  Fast")
	require.Contains(t, report, "→ 95 pts (5 pts AHEAD!)")
	require.Contains(t, report, "🔄 Even")
	require.Contains(t, report, "→ 90 pts (tied)")
}

func TestComposeBoxLinesExactWidth(t *testing.T) {
	primary := SiteResult{
		Label: "A site label far too long for any column to contain",
		URL:   "https://example.com/some/extremely/long/path/that/never/ends/and/keeps/going",
		Score: 42, LCP: 12.34, CLS: 0.9876,
		Recommendations: []audit.Recommendation{{
			Title:        strings.Repeat("T", 80),
			Action:       strings.TrimSpace(strings.Repeat("fix ", 40)),
			DisplayValue: strings.Repeat("x", 70),
		}},
	}
	comps := []SiteResult{{Label: "Competitor with an unusually verbose label", Score: 99}}

	report := fixedComposer().Compose(primary, comps)

	for _, line := range strings.Split(report, "\n") {
		switch {
		case strings.HasPrefix(line, "╔"), strings.HasPrefix(line, "╠"),
			strings.HasPrefix(line, "╚"), strings.HasPrefix(line, "║"):
			require.Equal(t, 60, runeLen(line), "box line drifted: %q", line)
		}
	}
}

func TestComposeActionItemTiers(t *testing.T) {
	recs := make([]audit.Recommendation, 7)
	for i := range recs {
		recs[i] = audit.Recommendation{
			Title:  fmt.Sprintf("Issue number %d", i+1),
			Action: fmt.Sprintf("Resolve issue number %d promptly.", i+1),
		}
	}
	primary := SiteResult{Label: "Main", URL: "https://main.example", Score: 40, Recommendations: recs}

	report := fixedComposer().Compose(primary, nil)

	require.Contains(t, report, "Found 7 improvement opportunities:")
	require.Contains(t, report, "🔴 1. Issue number 1")
	require.Contains(t, report, "🟠 2. Issue number 2")
	require.Contains(t, report, "🟠 3. Issue number 3")
	require.Contains(t, report, "🟡 4. Issue number 4")
	require.Contains(t, report, "🟡 7. Issue number 7")
	require.NotContains(t, report, "🎉")

	require.Contains(t, report, "→ Resolve issue number 5 promptly.")
	require.NotContains(t, report, "Resolve issue number 6")
	require.NotContains(t, report, "Resolve issue number 7")
}

func TestComposeBlankRowEveryThirdItem(t *testing.T) {
	recs := make([]audit.Recommendation, 4)
	for i := range recs {
		recs[i] = audit.Recommendation{Title: fmt.Sprintf("Item %d", i+1)}
	}
	primary := SiteResult{Label: "Main", URL: "https://main.example", Score: 40, Recommendations: recs}

	lines := composeLines(primary, nil)

	blank := "║" + strings.Repeat(" ", 58) + "║"
	third := indexOfLine(t, lines, "3. Item 3")
	require.Equal(t, blank, lines[third+1])
	require.Contains(t, lines[third+2], "4. Item 4")
}

func TestComposeNoBlankRowAfterLastItem(t *testing.T) {
	recs := make([]audit.Recommendation, 3)
	for i := range recs {
		recs[i] = audit.Recommendation{Title: fmt.Sprintf("Item %d", i+1)}
	}
	primary := SiteResult{Label: "Main", URL: "https://main.example", Score: 40, Recommendations: recs}

	lines := composeLines(primary, nil)

	blank := "║" + strings.Repeat(" ", 58) + "║"
	third := indexOfLine(t, lines, "3. Item 3")
	require.Equal(t, blank, lines[third+1])
	require.True(t, strings.HasPrefix(lines[third+2], "╚"))
}

func TestComposeTitleCaps(t *testing.T) {
	compose := func(title string) string {
		primary := SiteResult{Label: "Main", URL: "https://main.example", Score: 40,
			Recommendations: []audit.Recommendation{{Title: title}}}
		return fixedComposer().Compose(primary, nil)
	}

	// 47 runes fits both the title cap and the 56-rune line cap
	require.Contains(t, compose(strings.Repeat("b", 47)), strings.Repeat("b", 47))

	// over-long titles hit the 48-rune cap, then the line cap trims once more
	long := compose(strings.Repeat("a", 60))
	require.Contains(t, long, "🔴 1. "+strings.Repeat("a", 44)+"...")
	require.NotContains(t, long, strings.Repeat("a", 45))
}

func TestComposeDisplayValueLine(t *testing.T) {
	primary := SiteResult{Label: "Main", URL: "https://main.example", Score: 40,
		Recommendations: []audit.Recommendation{{
			Title:        "Slim down images",
			DisplayValue: "Potential savings of 215 KiB",
		}}}

	report := fixedComposer().Compose(primary, nil)

	require.Contains(t, report, "Potential gain: [Potential savings of 215 KiB]")
}

func TestComposeSummaryTruncatesLabel(t *testing.T) {
	primary := SiteResult{Label: "An extremely long label that overflows", URL: "https://main.example", Score: 40}

	lines := composeLines(primary, nil)

	row := lines[len(lines)-4]
	require.True(t, strings.HasPrefix(row, "An extremely long  "))
	require.NotContains(t, row, "An extremely long l")
}
