// Package price locates monetary values on product pages and decides whether
// a movement between two observations is worth reporting.
package price

import (
	"encoding/json"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/Houeta/rival-watch/internal/models"
	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"
)

// Strategy names recorded on an extraction.
const (
	SourceJSONLD   = "json-ld"
	SourceMeta     = "meta"
	SourceSelector = "selector"
	SourcePattern  = "text-pattern"
)

var (
	DefaultMinValid = decimal.RequireFromString("0.01")
	DefaultMaxValid = decimal.NewFromInt(1_000_000)
)

var metaPriceSelectors = []string{
	"meta[property='product:price:amount']",
	"meta[property='og:price:amount']",
	"meta[name='product:price:amount']",
	"meta[name='twitter:data1']",
}

var metaCurrencySelectors = []string{
	"meta[property='product:price:currency']",
	"meta[property='og:price:currency']",
	"meta[name='product:price:currency']",
}

var priceSelectors = []string{
	"[itemprop='price']",
	"[data-price]",
	"[data-product-price]",
	"[data-price-amount]",
	".product-price",
	".price-current",
	".current-price",
	".sale-price",
	".offer-price",
	".price",
	"#price",
}

var priceAttrs = []string{"content", "data-price", "data-product-price", "data-price-amount", "value"}

const numberPattern = `\d{1,3}(?:[.,]\d{3})+(?:[.,]\d{1,2})?|\d+(?:[.,]\d{1,2})?`

const (
	symbolPattern = `US\$|CA\$|AU\$|C\$|A\$|R\$|\$|€|£|¥|₹`
	codePattern   = `USD|EUR|GBP|JPY|CAD|AUD|CHF|INR|BRL|MXN|SEK|NOK|DKK|PLN`
)

// textPatterns capture the numeric part of a currency-adjacent amount in group 1.
var textPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:` + symbolPattern + `)\s?(` + numberPattern + `)`),
	regexp.MustCompile(`(` + numberPattern + `)\s?(?:` + symbolPattern + `)`),
	regexp.MustCompile(`\b(?:` + codePattern + `)\s?(` + numberPattern + `)`),
	regexp.MustCompile(`(` + numberPattern + `)\s?(?:` + codePattern + `)\b`),
}

type candidate struct {
	raw      string
	currency string
}

type strategy struct {
	name       string
	confidence models.Confidence
	collect    func(doc *goquery.Document, text string) []candidate
}

// Extractor runs the price strategies in descending reliability order.
type Extractor struct {
	minValid   decimal.Decimal
	maxValid   decimal.Decimal
	strategies []strategy
}

// NewExtractor builds an extractor accepting values in [minValid, maxValid].
// Zero bounds fall back to the defaults.
func NewExtractor(minValid, maxValid decimal.Decimal) *Extractor {
	if minValid.IsZero() {
		minValid = DefaultMinValid
	}
	if maxValid.IsZero() {
		maxValid = DefaultMaxValid
	}

	return &Extractor{
		minValid: minValid,
		maxValid: maxValid,
		strategies: []strategy{
			{SourceJSONLD, models.ConfidenceHigh, fromJSONLD},
			{SourceMeta, models.ConfidenceHigh, fromMeta},
			{SourceSelector, models.ConfidenceMedium, fromSelectors},
			{SourcePattern, models.ConfidenceLow, fromText},
		},
	}
}

// Extract returns the first in-range price found by the most reliable strategy.
// text is the normalized page text; when empty the document text is scanned.
func (e *Extractor) Extract(rawHTML, text string) models.Extraction {
	none := models.Extraction{Confidence: models.ConfidenceNone}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return none
	}
	if text == "" {
		text = doc.Find("body").Text()
	}

	for _, s := range e.strategies {
		for _, c := range s.collect(doc, text) {
			value, err := ParseAmount(c.raw)
			if err != nil || !e.inRange(value) {
				continue
			}

			currency := c.currency
			if currency == "" {
				currency = ResolveCurrency(c.raw)
			}

			return models.Extraction{
				Value:      decimal.NewNullDecimal(value),
				Raw:        strings.TrimSpace(c.raw),
				Currency:   currency,
				Confidence: s.confidence,
				Source:     s.name,
			}
		}
	}

	return none
}

func (e *Extractor) inRange(v decimal.Decimal) bool {
	return v.GreaterThanOrEqual(e.minValid) && v.LessThanOrEqual(e.maxValid)
}

func fromJSONLD(doc *goquery.Document, _ string) []candidate {
	var out []candidate
	doc.Find("script[type='application/ld+json']").Each(func(_ int, s *goquery.Selection) {
		dec := json.NewDecoder(strings.NewReader(s.Text()))
		dec.UseNumber()

		var data any
		if err := dec.Decode(&data); err != nil {
			return
		}
		walkLD(data, false, &out)
	})

	return out
}

var ldPriceTypes = map[string]bool{
	"Offer":                  true,
	"AggregateOffer":         true,
	"PriceSpecification":     true,
	"UnitPriceSpecification": true,
}

// offerKeys hold offers or price specifications. Their children count as
// offers even when they carry no @type.
var offerKeys = map[string]bool{"offers": true, "priceSpecification": true}

func walkLD(v any, underOffer bool, out *[]candidate) {
	switch node := v.(type) {
	case []any:
		for _, item := range node {
			walkLD(item, underOffer, out)
		}
	case map[string]any:
		if underOffer || hasLDType(node["@type"]) {
			for _, key := range []string{"price", "lowPrice"} {
				if raw := ldString(node[key]); raw != "" {
					*out = append(*out, candidate{raw: raw, currency: ldString(node["priceCurrency"])})
					break
				}
			}
		}
		for _, key := range []string{"@graph", "offers", "priceSpecification", "mainEntity", "hasVariant"} {
			if child, ok := node[key]; ok {
				walkLD(child, offerKeys[key], out)
			}
		}
	}
}

func hasLDType(t any) bool {
	switch v := t.(type) {
	case string:
		return ldPriceTypes[v]
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && ldPriceTypes[s] {
				return true
			}
		}
	}

	return false
}

func ldString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case json.Number:
		if d, err := decimal.NewFromString(val.String()); err == nil {
			return d.String()
		}
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return ""
	}
}

func fromMeta(doc *goquery.Document, _ string) []candidate {
	currency := ""
	for _, sel := range metaCurrencySelectors {
		if c, ok := doc.Find(sel).First().Attr("content"); ok && strings.TrimSpace(c) != "" {
			currency = strings.ToUpper(strings.TrimSpace(c))
			break
		}
	}

	var out []candidate
	for _, sel := range metaPriceSelectors {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			if c, ok := s.Attr("content"); ok && strings.TrimSpace(c) != "" {
				out = append(out, candidate{raw: c, currency: currency})
			}
		})
	}

	return out
}

func fromSelectors(doc *goquery.Document, _ string) []candidate {
	currency := ""
	if c, ok := doc.Find("[itemprop='priceCurrency']").First().Attr("content"); ok {
		currency = strings.ToUpper(strings.TrimSpace(c))
	}

	var out []candidate
	for _, sel := range priceSelectors {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			elemCurrency := currencyOr(text, currency)
			for _, attr := range priceAttrs {
				if v, ok := s.Attr(attr); ok && strings.TrimSpace(v) != "" {
					out = append(out, candidate{raw: v, currency: currencyOr(v, elemCurrency)})
				}
			}
			if text != "" {
				out = append(out, candidate{raw: text, currency: elemCurrency})
			}
		})
	}

	return out
}

func currencyOr(raw, fallback string) string {
	if c := ResolveCurrency(raw); c != "" {
		return c
	}

	return fallback
}

type textMatch struct {
	pos   int
	raw   string
	value string
}

// fromText collects currency-adjacent amounts and orders them by how often the
// same value repeats on the page, earliest occurrence first on ties.
func fromText(_ *goquery.Document, text string) []candidate {
	byStart := make(map[int]textMatch)
	for _, re := range textPatterns {
		for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
			numStart := loc[2]
			if _, seen := byStart[numStart]; seen {
				continue
			}
			raw := text[loc[0]:loc[1]]
			value, err := ParseAmount(text[loc[2]:loc[3]])
			if err != nil {
				continue
			}
			byStart[numStart] = textMatch{pos: numStart, raw: raw, value: value.String()}
		}
	}

	matches := make([]textMatch, 0, len(byStart))
	counts := make(map[string]int)
	first := make(map[string]int)
	for _, m := range byStart {
		matches = append(matches, m)
		counts[m.value]++
		if p, ok := first[m.value]; !ok || m.pos < p {
			first[m.value] = m.pos
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if counts[a.value] != counts[b.value] {
			return counts[a.value] > counts[b.value]
		}
		if first[a.value] != first[b.value] {
			return first[a.value] < first[b.value]
		}
		return a.pos < b.pos
	})

	out := make([]candidate, 0, len(matches))
	for _, m := range matches {
		out = append(out, candidate{raw: m.raw})
	}

	return out
}
