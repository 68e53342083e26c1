package artifact

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	namer := NewNamer("webevo-ai")
	namer.Now = func() time.Time {
		return time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC)
	}

	testCases := []struct {
		name        string
		domain      string
		generatedAt string
		ext         string
		expected    string
	}{
		{
			name:        "dots become hyphens",
			domain:      "example.com",
			generatedAt: "2025-08-13T10:00:00Z",
			ext:         "png",
			expected:    "example-com_2025-08-13_webevo-ai.png",
		},
		{
			name:        "multi-label domain",
			domain:      "sub.domain.co.uk",
			generatedAt: "2025-08-13T10:00:00Z",
			ext:         "pdf",
			expected:    "sub-domain-co-uk_2025-08-13_webevo-ai.pdf",
		},
		{
			name:        "unparsable date falls back to processing date",
			domain:      "example.com",
			generatedAt: "not-a-date",
			ext:         "png",
			expected:    "example-com_2026-01-15_webevo-ai.png",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, namer.Name(tc.domain, tc.generatedAt, tc.ext))
		})
	}
}

func TestNameIsDeterministic(t *testing.T) {
	namer := NewNamer("webevo-ai")

	first := namer.Name("test-site.com", "2025-08-13T10:00:00Z", "png")
	second := namer.Name("test-site.com", "2025-08-13T10:00:00Z", "png")

	assert.Equal(t, "test-site-com_2025-08-13_webevo-ai.png", first)
	assert.Equal(t, first, second)
}
