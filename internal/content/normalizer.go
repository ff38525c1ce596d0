// Package content turns raw HTML into stable, diffable page text.
package content

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/Houeta/rival-watch/internal/models"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// FingerprintLength is the number of hex characters kept from the content hash.
const FingerprintLength = 16

// noiseSelector matches markup that is never page content.
const noiseSelector = "script, style, noscript, iframe, svg, nav, footer, header, aside, template, " +
	".ad, .ads, .advert, .advertisement, .sponsored, [class^='ad-'], [class*=' ad-'], [id^='ad-'], " +
	"[data-ad], [data-ad-slot], [aria-label='advertisement']"

// mainSelectors are tried in order; the first match wins.
var mainSelectors = []string{
	"main",
	"article",
	"[role='main']",
	"#main-content",
	".main-content",
	"#content",
	".content",
	"#main",
	".main",
}

var blockElements = map[string]bool{
	"address": true, "article": true, "blockquote": true, "dd": true, "div": true, "dl": true,
	"dt": true, "fieldset": true, "figcaption": true, "figure": true, "form": true, "h1": true,
	"h2": true, "h3": true, "h4": true, "h5": true, "h6": true, "hr": true, "li": true,
	"main": true, "ol": true, "p": true, "pre": true, "section": true, "table": true,
	"tbody": true, "td": true, "th": true, "thead": true, "tr": true, "ul": true, "option": true,
}

// Normalize strips non-content markup from rawHTML, selects the main content subtree
// and returns its normalized text together with a short fingerprint.
func Normalize(rawHTML string) (models.Content, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return models.Content{}, fmt.Errorf("data cannot be parsed as HTML: %w", err)
	}

	doc.Find(noiseSelector).Remove()

	text := NormalizeText(extractText(mainContent(doc)))

	return models.Content{
		RawHTML:        rawHTML,
		NormalizedText: text,
		Fingerprint:    Fingerprint(text),
	}, nil
}

// NormalizeText trims every line, collapses inner whitespace and drops empty lines.
func NormalizeText(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}

	return strings.Join(out, "\n")
}

// Fingerprint returns the truncated SHA256 of normalized text. It is an equality
// oracle only.
func Fingerprint(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])[:FingerprintLength]
}

func mainContent(doc *goquery.Document) *goquery.Selection {
	for _, sel := range mainSelectors {
		if found := doc.Find(sel).First(); found.Length() > 0 {
			return found
		}
	}

	if body := doc.Find("body"); body.Length() > 0 {
		return body
	}

	return doc.Selection
}

// extractText renders text with a line break around every block element,
// so that visually separate blocks become separate lines.
func extractText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		writeText(&b, n)
	}

	return b.String()
}

func writeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.CommentNode, html.DoctypeNode:
		return
	case html.ElementNode:
		if n.Data == "br" {
			b.WriteByte('\n')
			return
		}
	case html.ErrorNode, html.DocumentNode, html.RawNode:
	}

	block := n.Type == html.ElementNode && blockElements[n.Data]
	if block {
		b.WriteByte('\n')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}
	if block {
		b.WriteByte('\n')
	}
}
