package provider

const thumbnailBase = "https://img.youtube.com/vi/"

func Thumbnails(id string) ThumbnailSet {
	return ThumbnailSet{
		MaxRes: thumbnailBase + id + "/maxresdefault.jpg",
		Medium: thumbnailBase + id + "/mqdefault.jpg",
	}
}

// NewVideoRef normalizes raw and extracts its identifier. ErrInvalidURL is
// returned when no identifier matches, before any upstream is contacted.
func NewVideoRef(raw string) (VideoRef, error) {
	normalized := NormalizeURL(raw)
	id, ok := ExtractVideoID(normalized)
	if !ok {
		return VideoRef{}, ErrInvalidURL
	}
	return VideoRef{
		RawURL:        raw,
		NormalizedURL: normalized,
		ID:            id,
	}, nil
}
