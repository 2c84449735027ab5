package provider

import (
	"net/url"
	"path"
	"regexp"
	"strings"
)

const watchURLPrefix = "https://www.youtube.com/watch?v="

var (
	videoIDRegex = regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})(?:\?|&|$)`)

	shortLinkHosts = map[string]bool{
		"youtu.be":     true,
		"www.youtu.be": true,
	}
	longLinkHosts = map[string]bool{
		"youtube.com":     true,
		"www.youtube.com": true,
		"m.youtube.com":   true,
	}
)

// NormalizeURL rewrites short links (youtu.be/<id>, /shorts/<id>) to the
// canonical watch URL. Anything else, including unparsable input, is
// returned unchanged.
func NormalizeURL(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return raw
	}
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}

	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return raw
	}

	host := strings.ToLower(u.Hostname())
	var id string
	switch {
	case shortLinkHosts[host]:
		id = lastSegment(u.Path)
	case longLinkHosts[host] && strings.HasPrefix(u.Path, "/shorts/"):
		id = lastSegment(u.Path)
	default:
		return raw
	}

	if id == "" {
		return raw
	}
	return watchURLPrefix + id
}

// ExtractVideoID returns the 11 character identifier following "v=" or "/".
func ExtractVideoID(raw string) (string, bool) {
	m := videoIDRegex.FindStringSubmatch(raw)
	if len(m) != 2 {
		return "", false
	}
	return m[1], true
}

func lastSegment(p string) string {
	seg := path.Base(strings.TrimRight(p, "/"))
	if seg == "." || seg == "/" {
		return ""
	}
	return seg
}
