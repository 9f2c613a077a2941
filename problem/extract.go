package problem

import (
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Selectors for the elements of a Codeforces problem statement.
const (
	titleSelector       = "div.title"
	timeLimitSelector   = "div.time-limit"
	memoryLimitSelector = "div.memory-limit"
	inputSelector       = "div.input"
	outputSelector      = "div.output"
)

// Leftmost-first alternation: the unit is always reported singular.
var (
	timeLimitPattern   = regexp.MustCompile(`(\d+\.?\d*)\s*(second|seconds)`)
	memoryLimitPattern = regexp.MustCompile(`(\d+)\s*(megabyte|megabytes)`)
)

// ExtractHTML parses raw page markup and extracts a Record from it. Markup
// that cannot be parsed at all yields a Record made entirely of defaults.
func ExtractHTML(html string, now time.Time) *Record {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return &Record{
			ProblemName: DefaultName,
			TimeLimit:   DefaultLimit,
			MemoryLimit: DefaultLimit,
			TestCases:   []TestCase{},
			CreatedDate: now.Format(DateFormat),
		}
	}
	return Extract(doc, now)
}

// Extract builds a Record from a parsed problem page. Every field is looked
// up independently and falls back to its default when the element is
// absent; extraction never fails. ProblemID, URL and Language are left for
// the caller to fill in.
func Extract(doc *goquery.Document, now time.Time) *Record {
	return &Record{
		ProblemName: extractTitle(doc).Or(DefaultName),
		TimeLimit:   extractLimit(doc, timeLimitSelector, timeLimitPattern).Or(DefaultLimit),
		MemoryLimit: extractLimit(doc, memoryLimitSelector, memoryLimitPattern).Or(DefaultLimit),
		TestCases:   extractTestCases(doc),
		CreatedDate: now.Format(DateFormat),
	}
}

func extractTitle(doc *goquery.Document) Field {
	sel := doc.Find(titleSelector).First()
	if sel.Length() == 0 {
		return Field{}
	}
	return Field{Value: normalizeSpace(sel.Text()), Found: true}
}

// extractLimit returns "<number> <unit>" from the first match of pattern in
// the element's text.
func extractLimit(doc *goquery.Document, selector string, pattern *regexp.Regexp) Field {
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return Field{}
	}

	// Join the text nodes with spaces so the label and the value don't run
	// together ("per test2 seconds").
	text := strings.Join(textNodes(sel), " ")
	match := pattern.FindStringSubmatch(text)
	if match == nil {
		return Field{}
	}
	return Field{Value: match[1] + " " + match[2], Found: true}
}

// extractTestCases pairs the i-th input block with the i-th output block.
// When the counts differ the trailing unmatched blocks are dropped.
func extractTestCases(doc *goquery.Document) []TestCase {
	inputs := doc.Find(inputSelector)
	outputs := doc.Find(outputSelector)

	n := min(inputs.Length(), outputs.Length())
	cases := make([]TestCase, 0, n)
	for i := 0; i < n; i++ {
		cases = append(cases, TestCase{
			Input:  preText(inputs.Eq(i)),
			Output: preText(outputs.Eq(i)),
		})
	}
	return cases
}

// preText returns the lines of the block's first <pre> child, or "" if there
// is none. Newer statements put each line in its own <div>, older ones use
// <br>; both come out as one line per text node.
func preText(block *goquery.Selection) string {
	pre := block.Find("pre").First()
	if pre.Length() == 0 {
		return ""
	}
	return strings.Join(textNodes(pre), "\n")
}

// textNodes returns the trimmed, non-empty text nodes below sel in document
// order.
func textNodes(sel *goquery.Selection) []string {
	parts := []string{}
	var walk func(*goquery.Selection)
	walk = func(s *goquery.Selection) {
		s.Contents().Each(func(_ int, c *goquery.Selection) {
			if goquery.NodeName(c) == "#text" {
				if t := strings.TrimSpace(c.Text()); t != "" {
					parts = append(parts, t)
				}
				return
			}
			walk(c)
		})
	}
	walk(sel)
	return parts
}

// normalizeSpace collapses runs of whitespace into single spaces.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
