package price_test

import (
	"testing"

	"github.com/Houeta/rival-watch/internal/models"
	"github.com/Houeta/rival-watch/internal/price"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExtractor() *price.Extractor {
	return price.NewExtractor(decimal.Zero, decimal.Zero)
}

func TestExtract(t *testing.T) {
	testCases := []struct {
		name       string
		html       string
		text       string
		value      string
		currency   string
		confidence models.Confidence
		source     string
	}{
		{
			name: "json-ld offer",
			html: `<html><head><script type="application/ld+json">
				{"@context":"https://schema.org","@type":"Product","name":"Widget",
				 "offers":{"@type":"Offer","price":"1299.00","priceCurrency":"EUR"}}
				</script></head><body><p>Only $5 today</p></body></html>`,
			value:      "1299",
			currency:   "EUR",
			confidence: models.ConfidenceHigh,
			source:     price.SourceJSONLD,
		},
		{
			name: "json-ld graph with numeric aggregate offer",
			html: `<script type="application/ld+json">
				{"@graph":[{"@type":"WebPage"},{"@type":"Product","offers":
				  {"@type":"AggregateOffer","lowPrice":19.5,"priceCurrency":"USD"}}]}
				</script>`,
			value:      "19.5",
			currency:   "USD",
			confidence: models.ConfidenceHigh,
			source:     price.SourceJSONLD,
		},
		{
			name: "json-ld product with untyped offer",
			html: `<html><head><script type="application/ld+json">
				{"@type":"Product","offers":{"price":"1299.00","priceCurrency":"EUR"}}
				</script></head><body><p>Only $5 today</p></body></html>`,
			value:      "1299",
			currency:   "EUR",
			confidence: models.ConfidenceHigh,
			source:     price.SourceJSONLD,
		},
		{
			name: "json-ld product with untyped offer list",
			html: `<html><head><script type="application/ld+json">
				{"@type":"Product","offers":[{"price":24.99,"priceCurrency":"USD"}]}
				</script></head><body><p>Only $5 today</p></body></html>`,
			value:      "24.99",
			currency:   "USD",
			confidence: models.ConfidenceHigh,
			source:     price.SourceJSONLD,
		},
		{
			name: "json-ld untyped price specification",
			html: `<script type="application/ld+json">
				{"@type":"Offer","priceSpecification":{"price":"15.00","priceCurrency":"GBP"}}
				</script>`,
			value:      "15",
			currency:   "GBP",
			confidence: models.ConfidenceHigh,
			source:     price.SourceJSONLD,
		},
		{
			name: "meta price tags",
			html: `<head><meta property="product:price:amount" content="49.90">
				<meta property="product:price:currency" content="gbp"></head>`,
			value:      "49.9",
			currency:   "GBP",
			confidence: models.ConfidenceHigh,
			source:     price.SourceMeta,
		},
		{
			name:       "selector attribute before text",
			html:       `<body><span class="price" data-price="24.99">Now only $19.99!</span></body>`,
			value:      "24.99",
			currency:   "USD",
			confidence: models.ConfidenceMedium,
			source:     price.SourceSelector,
		},
		{
			name: "itemprop price with currency",
			html: `<div itemscope><meta itemprop="priceCurrency" content="CHF">
				<span itemprop="price">1299.00</span></div>`,
			value:      "1299",
			currency:   "CHF",
			confidence: models.ConfidenceMedium,
			source:     price.SourceSelector,
		},
		{
			name:       "selector element text",
			html:       `<body><div class="product-price">€ 89,95</div></body>`,
			value:      "89.95",
			currency:   "EUR",
			confidence: models.ConfidenceMedium,
			source:     price.SourceSelector,
		},
		{
			name:       "regex keeps the most repeated value",
			html:       `<body>x</body>`,
			text:       "Starter $9\nPro $29.00\nBuy Pro for $29\nShipping $5",
			value:      "29",
			currency:   "USD",
			confidence: models.ConfidenceLow,
			source:     price.SourcePattern,
		},
		{
			name:       "regex with trailing iso code",
			html:       `<body><p>Total 1.234,56 EUR</p></body>`,
			value:      "1234.56",
			currency:   "EUR",
			confidence: models.ConfidenceLow,
			source:     price.SourcePattern,
		},
		{
			name:       "out-of-range selector falls through to regex",
			html:       `<body><span data-price="0">free?</span><p>Sale £12.50</p></body>`,
			value:      "12.5",
			currency:   "GBP",
			confidence: models.ConfidenceLow,
			source:     price.SourcePattern,
		},
		{
			name: "out-of-range json-ld falls through to meta",
			html: `<head><script type="application/ld+json">{"@type":"Offer","price":"123456789"}</script>
				<meta property="og:price:amount" content="15.00"></head>`,
			value:      "15",
			confidence: models.ConfidenceHigh,
			source:     price.SourceMeta,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			got := newExtractor().Extract(tc.html, tc.text)

			// Assert
			require.True(t, got.Value.Valid, "expected a price")
			assert.True(t, decimal.RequireFromString(tc.value).Equal(got.Value.Decimal), "got %s", got.Value.Decimal)
			assert.Equal(t, tc.currency, got.Currency)
			assert.Equal(t, tc.confidence, got.Confidence)
			assert.Equal(t, tc.source, got.Source)
		})
	}
}

func TestExtract_JSONLDWinsOverConflictingRegex(t *testing.T) {
	html := `<html><head><script type="application/ld+json">
		{"@type":"Product","offers":[{"@type":"Offer","price":"79.00","priceCurrency":"USD"}]}
		</script></head><body><p>Was $99.00</p><p>Was $99.00</p></body></html>`

	got := newExtractor().Extract(html, "Was $99.00\nWas $99.00")

	assert.Equal(t, models.ConfidenceHigh, got.Confidence)
	assert.True(t, decimal.NewFromInt(79).Equal(got.Value.Decimal))
}

func TestExtract_UntypedNodeOutsideOffersIsIgnored(t *testing.T) {
	html := `<script type="application/ld+json">{"@type":"Product","price":"7.00"}</script><p>Sale $9</p>`

	got := newExtractor().Extract(html, "Sale $9")

	assert.Equal(t, models.ConfidenceLow, got.Confidence)
	assert.True(t, decimal.NewFromInt(9).Equal(got.Value.Decimal))
}

func TestExtract_NoPrice(t *testing.T) {
	got := newExtractor().Extract(`<body><p>Contact sales for pricing</p></body>`, "")

	assert.False(t, got.Value.Valid)
	assert.Equal(t, models.ConfidenceNone, got.Confidence)
	assert.Empty(t, got.Source)
}

func TestExtract_BrokenJSONLDIsSkipped(t *testing.T) {
	html := `<script type="application/ld+json">{"@type":"Offer","price":</script><span class="price">$12</span>`

	got := newExtractor().Extract(html, "")

	assert.Equal(t, models.ConfidenceMedium, got.Confidence)
	assert.True(t, decimal.NewFromInt(12).Equal(got.Value.Decimal))
}

func TestExtract_CustomRange(t *testing.T) {
	ext := price.NewExtractor(decimal.NewFromInt(100), decimal.NewFromInt(500))

	got := ext.Extract(`<body><span class="price">$50</span><span class="price">$150</span></body>`, "")

	assert.True(t, decimal.NewFromInt(150).Equal(got.Value.Decimal))
	assert.Equal(t, models.ConfidenceMedium, got.Confidence)
}
