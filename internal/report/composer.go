package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/enqinsel/seo-pulse/internal/audit"
)

const interiorWidth = 58

// SiteResult is one measured site as the report renders it.
type SiteResult struct {
	Label           string
	URL             string
	Score           int
	LCP             float64
	CLS             float64
	Recommendations []audit.Recommendation
}

// Composer renders the comparative text report. The clock is a field so
// tests can pin the date line.
type Composer struct {
	now func() time.Time
}

func NewComposer() *Composer {
	return &Composer{now: time.Now}
}

// Compose renders the boxed comparison report followed by the plain metric
// summary table. Every interior box line is truncated and padded to exactly
// 58 columns before the borders are attached, so the box never breaks.
func (c *Composer) Compose(primary SiteResult, comparisons []SiteResult) string {
	var lines []string
	interior := func(content string) {
		lines = append(lines, "║"+pad(content, interiorWidth)+"║")
	}
	rule := func(left, right string) {
		lines = append(lines, left+strings.Repeat("═", interiorWidth)+right)
	}

	rule("╔", "╗")
	interior(center("🚀 SEO-PULSE PERFORMANCE REPORT", interiorWidth))
	interior(center(c.now().Format("02 January 2006"), interiorWidth))
	rule("╠", "╣")

	interior(" 📊 OUR SITE: " + primary.Label)
	interior("    URL: " + primary.URL)
	interior(fmt.Sprintf("    Performance: %d/100 | LCP: %ss | CLS: %s",
		primary.Score, formatDecimal(primary.LCP), formatDecimal(primary.CLS)))
	rule("╠", "╣")

	interior(" 🏁 COMPETITOR COMPARISON")
	interior("")
	for _, comp := range comparisons {
		interior(comparisonLine(primary.Score, comp))
	}
	rule("╠", "╣")

	interior(" 📋 ACTION ITEMS")
	interior("")
	if total := len(primary.Recommendations); total > 0 {
		interior(fmt.Sprintf("    Found %d improvement opportunities:", total))
		interior("")
		for i, rec := range primary.Recommendations {
			n := i + 1
			for _, line := range actionItemLines(n, rec) {
				interior(line)
			}
			if n%3 == 0 && n < total {
				interior("")
			}
		}
	} else {
		interior("    🎉 Great! No critical issues found.")
	}
	interior("")
	rule("╚", "╝")

	divider := strings.Repeat("─", 40)
	lines = append(lines, "", "📈 METRIC DETAILS:", divider)
	lines = append(lines, summaryRow("Site", "Score", "LCP", "CLS"), divider)
	lines = append(lines, siteRow(primary))
	for _, comp := range comparisons {
		lines = append(lines, siteRow(comp))
	}
	lines = append(lines, divider, "")
	lines = append(lines, "This report was generated automatically by SEO-Pulse.")

	return strings.Join(lines, "\n")
}

func comparisonLine(primaryScore int, comp SiteResult) string {
	diff := primaryScore - comp.Score

	var status, detail string
	switch {
	case diff > 0:
		status = "✅ " + comp.Label
		detail = fmt.Sprintf("→ %d pts (%d pts behind)", comp.Score, diff)
	case diff < 0:
		status = "⚠️  " + comp.Label
		detail = fmt.Sprintf("→ %d pts (%d pts AHEAD!)", comp.Score, -diff)
	default:
		status = "🔄 " + comp.Label
		detail = fmt.Sprintf("→ %d pts (tied)", comp.Score)
	}
	return "    " + padRight(status, 25) + " " + detail
}

// actionItemLines renders one ranked recommendation. The first item gets the
// critical marker, items two and three the mid tier, the rest the low tier.
// Action text is expanded only for the first five items.
func actionItemLines(n int, rec audit.Recommendation) []string {
	marker := "🟡"
	switch {
	case n == 1:
		marker = "🔴"
	case n <= 3:
		marker = "🟠"
	}

	title := rec.Title
	if runeLen(title) > 48 {
		title = truncateRunes(title, 45) + "..."
	}
	titleLine := fmt.Sprintf("    %s %d. %s", marker, n, title)
	if runeLen(titleLine) > 56 {
		titleLine = truncateRunes(titleLine, 53) + "..."
	}
	lines := []string{titleLine}

	if rec.DisplayValue != "" {
		dvLine := "       Potential gain: [" + rec.DisplayValue + "]"
		if runeLen(dvLine) > 56 {
			dvLine = truncateRunes(dvLine, 53) + "..."
		}
		lines = append(lines, dvLine)
	}

	if n <= 5 && rec.Action != "" {
		lines = append(lines, wrapAction(rec.Action)...)
	}
	return lines
}

func summaryRow(label, score, lcp, cls string) string {
	return padRight(label, 20) + " " + padRight(score, 8) + " " + padRight(lcp, 8) + " " + padRight(cls, 8)
}

func siteRow(site SiteResult) string {
	return summaryRow(
		truncateRunes(site.Label, 18),
		strconv.Itoa(site.Score),
		formatDecimal(site.LCP),
		formatDecimal(site.CLS),
	)
}
