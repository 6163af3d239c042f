package source

import (
	"net/url"
	"regexp"
	"strings"
)

type pageKind int

const (
	pageSkip pageKind = iota
	pageSection
	pageArticle
)

var (
	// dated paths like /2024/03/05/... or /2024/mar/5/...
	reDatedPath = regexp.MustCompile(`/\d{4}/(\d{2}|[a-z]{3})/\d{1,2}/`)
	reSkipExt   = regexp.MustCompile(`\.(jpe?g|png|gif|webp|svg|ico|css|js|pdf|zip|mp[34]|xml)$`)
)

var skipPathWords = []string{
	"/video/", "/audio/", "/gallery/", "/podcast/",
	"/tag/", "/tags/", "/author/", "/search/",
	"/login", "/signup", "/subscribe", "/newsletter",
	"/privacy", "/terms", "/about", "/contact",
}

// classifyPath decides whether a same-host link looks like an article,
// a section page worth following one hop deeper, or noise.
func classifyPath(path string) pageKind {
	p := strings.ToLower(strings.TrimRight(path, "/"))
	if p == "" || p == "/" {
		return pageSkip
	}
	if reSkipExt.MatchString(p) {
		return pageSkip
	}
	for _, w := range skipPathWords {
		if strings.Contains(p+"/", w) {
			return pageSkip
		}
	}

	if reDatedPath.MatchString(p + "/") {
		return pageArticle
	}

	segments := strings.Split(strings.TrimLeft(p, "/"), "/")
	// long hyphenated slugs read like headlines
	if strings.Count(segments[len(segments)-1], "-") >= 3 {
		return pageArticle
	}
	if len(segments) <= 2 {
		return pageSection
	}
	return pageSkip
}

// normalizeURL strips the query, fragment and www prefix so the same
// article discovered twice maps to one key.
func normalizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	u.RawQuery = ""
	u.Fragment = ""
	u.Host = strings.TrimPrefix(u.Host, "www.")
	if u.Scheme == "" {
		u.Scheme = "https"
	}
	return u.String()
}

// sameHost compares hosts ignoring a www prefix.
func sameHost(a, b string) bool {
	return strings.TrimPrefix(a, "www.") == strings.TrimPrefix(b, "www.")
}

// allowedHosts lists the host spellings colly may visit for a base URL.
func allowedHosts(base *url.URL) []string {
	bare := strings.TrimPrefix(base.Hostname(), "www.")
	hosts := []string{bare, "www." + bare}
	if h := base.Host; h != bare && h != "www."+bare {
		hosts = append(hosts, h)
	}
	return hosts
}
