package utm

import (
	"testing"

	"linktrack/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge(t *testing.T) {
	tests := []struct {
		name   string
		rawURL string
		params model.UTMParams
		want   string
	}{
		{
			name:   "empty params return URL unchanged",
			rawURL: "https://example.com/path?x=1&y=2",
			params: model.UTMParams{},
			want:   "https://example.com/path?x=1&y=2",
		},
		{
			name:   "single param",
			rawURL: "https://example.com/x",
			params: model.UTMParams{Source: "nl"},
			want:   "https://example.com/x?utm_source=nl",
		},
		{
			name:   "all five params",
			rawURL: "https://example.com/",
			params: model.UTMParams{
				Source:   "news",
				Medium:   "email",
				Campaign: "spring",
				Term:     "shoes",
				Content:  "banner",
			},
			want: "https://example.com/?utm_campaign=spring&utm_content=banner&utm_medium=email&utm_source=news&utm_term=shoes",
		},
		{
			name:   "overwrites existing utm keys",
			rawURL: "https://example.com/?utm_source=old&keep=yes",
			params: model.UTMParams{Source: "new"},
			want:   "https://example.com/?keep=yes&utm_source=new",
		},
		{
			name:   "preserves unrelated query params",
			rawURL: "https://example.com/search?q=go&page=2",
			params: model.UTMParams{Medium: "social"},
			want:   "https://example.com/search?page=2&q=go&utm_medium=social",
		},
		{
			name:   "values are query-escaped",
			rawURL: "https://example.com/",
			params: model.UTMParams{Campaign: "summer sale"},
			want:   "https://example.com/?utm_campaign=summer+sale",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Merge(tt.rawURL, tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMerge_RoundTrip(t *testing.T) {
	params := model.UTMParams{
		Source:   "newsletter",
		Campaign: "q3-launch",
		Content:  "footer",
	}

	merged, err := Merge("https://example.com/landing?ref=abc", params)
	require.NoError(t, err)

	got, err := Extract(merged)
	require.NoError(t, err)
	assert.Equal(t, params, got)
}

func TestMerge_InvalidURL(t *testing.T) {
	_, err := Merge("://not-a-url", model.UTMParams{Source: "x"})
	assert.Error(t, err)
}

func TestExtract_NoUTM(t *testing.T) {
	got, err := Extract("https://example.com/?q=1")
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
}
