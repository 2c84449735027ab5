package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"short link with query", "https://youtu.be/dQw4w9WgXcQ?si=abc123", "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
		{"short link plain", "https://youtu.be/dQw4w9WgXcQ", "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
		{"short link no scheme", "youtu.be/dQw4w9WgXcQ", "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
		{"shorts path", "https://www.youtube.com/shorts/aqz-KE-bpKQ?feature=share", "https://www.youtube.com/watch?v=aqz-KE-bpKQ"},
		{"long link unchanged", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42"},
		{"other host unchanged", "https://vimeo.com/123456", "https://vimeo.com/123456"},
		{"empty", "", ""},
		{"garbage", "%%%not a url", "%%%not a url"},
		{"short link without id", "https://youtu.be/", "https://youtu.be/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeURL(tt.in))
		})
	}
}

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   string
		wantOK bool
	}{
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"watch url extra params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PL123", "dQw4w9WgXcQ", true},
		{"short link", "https://youtu.be/aqz-KE-bpKQ?t=5", "aqz-KE-bpKQ", true},
		{"embed", "https://www.youtube.com/embed/_OBlgSz8sSM", "_OBlgSz8sSM", true},
		{"too short", "https://www.youtube.com/watch?v=abc", "", false},
		{"too long", "https://www.youtube.com/watch?v=dQw4w9WgXcQX", "", false},
		{"not a url", "hello world", "", false},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractVideoID(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeThenExtractShortLinks(t *testing.T) {
	ids := []string{"dQw4w9WgXcQ", "aqz-KE-bpKQ", "_OBlgSz8sSM", "0123456789a"}
	for _, id := range ids {
		normalized := NormalizeURL("https://youtu.be/" + id + "?extra=1")
		require.Equal(t, "https://www.youtube.com/watch?v="+id, normalized)

		got, ok := ExtractVideoID(normalized)
		require.True(t, ok)
		assert.Equal(t, id, got)
	}
}
