package provider

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/kkdai/youtube/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombinedFormats(t *testing.T) {
	list := youtube.FormatList{
		{ItagNo: 18, MimeType: `video/mp4; codecs="avc1.42001E, mp4a.40.2"`, QualityLabel: "360p", AudioChannels: 2},
		{ItagNo: 137, MimeType: `video/mp4; codecs="avc1.640028"`, QualityLabel: "1080p"},
		{ItagNo: 140, MimeType: `audio/mp4; codecs="mp4a.40.2"`, AudioChannels: 2},
		{ItagNo: 22, MimeType: `video/mp4; codecs="avc1.64001F, mp4a.40.2"`, QualityLabel: "720p", AudioChannels: 2},
	}

	got := CombinedFormats(list)
	assert.Equal(t, []FormatVariant{
		{Quality: "360p", Itag: 18},
		{Quality: "720p", Itag: 22},
	}, got)
}

func TestCombinedFormatsEmpty(t *testing.T) {
	got := CombinedFormats(nil)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFindFormat(t *testing.T) {
	list := youtube.FormatList{
		{ItagNo: 18, MimeType: `video/mp4; codecs="avc1.42001E, mp4a.40.2"`, QualityLabel: "360p", AudioChannels: 2},
		{ItagNo: 140, MimeType: `audio/mp4; codecs="mp4a.40.2"`, AudioChannels: 2},
		{ItagNo: 18, MimeType: `video/webm`, QualityLabel: "360p (dup)", AudioChannels: 2},
	}

	for _, tt := range []struct {
		name    string
		itag    int
		want    string
		wantErr error
	}{
		{name: "Found", itag: 140, want: `audio/mp4; codecs="mp4a.40.2"`},
		{name: "FirstDuplicateWins", itag: 18, want: `video/mp4; codecs="avc1.42001E, mp4a.40.2"`},
		{name: "Missing", itag: 999, wantErr: ErrUnknownFormat},
	} {
		t.Run(tt.name, func(t *testing.T) {
			f, err := findFormat(list, tt.itag)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, f)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.itag, f.ItagNo)
			assert.Equal(t, tt.want, f.MimeType)
		})
	}
}

func TestFindFormatEmptyList(t *testing.T) {
	_, err := findFormat(nil, 18)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestOpenStreamRejectsInvalidItag(t *testing.T) {
	yp := NewYouTube(http.DefaultClient, time.Second)

	_, err := yp.OpenStream(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ", 0)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestListFormatsCancelledContext(t *testing.T) {
	yp := NewYouTube(http.DefaultClient, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := yp.ListFormats(ctx, "https://youtu.be/dQw4w9WgXcQ")
	require.Error(t, err)

	var resErr *ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", resErr.URL)
}
