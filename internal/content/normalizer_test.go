package content_test

import (
	"testing"

	"github.com/Houeta/rival-watch/internal/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name     string
		html     string
		expected string
	}{
		{
			name: "strips noise and prefers main",
			html: `<html><head><style>.x{}</style><script>var a = 1;</script></head>
			<body>
				<header>Site header</header>
				<nav><a href="/">Home</a></nav>
				<main>
					<h1>Pro Plan</h1>
					<p>All the   features
					you need.</p>
					<div class="ad-banner">Buy now!</div>
				</main>
				<aside>Related</aside>
				<footer>Copyright</footer>
			</body></html>`,
			expected: "Pro Plan\nAll the features\nyou need.",
		},
		{
			name:     "article when main is absent",
			html:     `<body><div>menu</div><article><p>Story</p><p>More</p></article></body>`,
			expected: "Story\nMore",
		},
		{
			name:     "role main",
			html:     `<body><div>chrome</div><div role="main"><span>Inside</span></div></body>`,
			expected: "Inside",
		},
		{
			name:     "content class",
			html:     `<body><div class="sidebar">side</div><div class="content"><p>Body copy</p></div></body>`,
			expected: "Body copy",
		},
		{
			name:     "falls back to body",
			html:     `<body><p>first</p><br><p>second</p><noscript>enable js</noscript></body>`,
			expected: "first\nsecond",
		},
		{
			name:     "table cells become separate lines",
			html:     `<main><table><tr><td>Basic</td><td>$10</td></tr></table></main>`,
			expected: "Basic\n$10",
		},
		{
			name:     "empty document",
			html:     "",
			expected: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			got, err := content.Normalize(tc.html)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got.NormalizedText)
			assert.Equal(t, tc.html, got.RawHTML)
			assert.Len(t, got.Fingerprint, content.FingerprintLength)
		})
	}
}

func TestNormalize_WhitespaceOnlyRerenderKeepsFingerprint(t *testing.T) {
	a, err := content.Normalize(`<main><p>Price list</p><p>Basic plan</p></main>`)
	require.NoError(t, err)

	b, err := content.Normalize("<main>\n\n  <p>  Price   list </p>\n\t<p>Basic plan</p>\n</main>")
	require.NoError(t, err)

	assert.Equal(t, a.NormalizedText, b.NormalizedText)
	assert.Equal(t, a.Fingerprint, b.Fingerprint)
}

func TestNormalize_AdsAndScriptsDoNotAffectFingerprint(t *testing.T) {
	a, err := content.Normalize(`<main><p>Plans</p><div class="ads">Ad one</div><script>t=1</script></main>`)
	require.NoError(t, err)

	b, err := content.Normalize(`<main><p>Plans</p><div class="ads">Ad two</div><script>t=2</script></main>`)
	require.NoError(t, err)

	assert.Equal(t, a.Fingerprint, b.Fingerprint)
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "a b\nc", content.NormalizeText("  a   b  \n\n\t\n c "))
	assert.Empty(t, content.NormalizeText(" \n \n"))
}

func TestFingerprint(t *testing.T) {
	fp := content.Fingerprint("hello")

	assert.Len(t, fp, content.FingerprintLength)
	assert.Equal(t, fp, content.Fingerprint("hello"))
	assert.NotEqual(t, fp, content.Fingerprint("hello!"))
	// sha256("hello") = 2cf24dba5fb0a30e...
	assert.Equal(t, "2cf24dba5fb0a30e", fp)
}
