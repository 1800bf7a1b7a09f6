// Package pathmap computes canonical repository paths for pages and
// assets under the content tree of one site.
package pathmap

import (
	"net/url"
	"strings"
)

const (
	// ContentRoot is the repository content-tree prefix for pages.
	ContentRoot = "/content/"
	// AssetRoot is the repository binary-tree prefix for assets.
	AssetRoot = "/content/dam/"
)

// PagePath maps a page's source path into the site's content tree. A
// path already under /content/ keeps its shape with the site segment
// swapped in; anything else is grafted under /content/<site>.
func PagePath(sourcePath, site string) string {
	if strings.HasPrefix(sourcePath, ContentRoot) {
		return replaceSegment(sourcePath, 2, site)
	}
	return ContentRoot + site + sourcePath
}

// AssetPath maps an asset URL into the site's binary tree. Paths already
// under /content/dam/ are adopted as-is modulo site substitution (query
// parameters ignored); everything else moves under /content/dam/<site>
// with the query string folded into the node name so distinct variants
// of the same file get distinct paths.
func AssetPath(u *url.URL, site string) string {
	base, ext := splitExt(u.Path)
	if strings.HasPrefix(base, AssetRoot) {
		return replaceSegment(base, 3, site) + ext
	}
	return AssetRoot + site + base + querySuffix(u.RawQuery) + ext
}

// splitExt splits a path into an extensionless base and the extension of
// its final segment, dot included; ext is empty when the last segment
// has no dot.
func splitExt(p string) (base, ext string) {
	last := p
	if i := strings.LastIndex(p, "/"); i >= 0 {
		last = p[i+1:]
	}
	if i := strings.LastIndex(last, "."); i >= 0 {
		return p[:len(p)-(len(last)-i)], last[i:]
	}
	return p, ""
}

// querySuffix renders query parameters as _keyvalue runs in encounter
// order, unescaped.
func querySuffix(rawQuery string) string {
	if rawQuery == "" {
		return ""
	}
	var b strings.Builder
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		k, v, _ := strings.Cut(pair, "=")
		if ku, err := url.QueryUnescape(k); err == nil {
			k = ku
		}
		if vu, err := url.QueryUnescape(v); err == nil {
			v = vu
		}
		b.WriteString("_")
		b.WriteString(k)
		b.WriteString(v)
	}
	return b.String()
}

// replaceSegment swaps the n-th slash-separated segment (counting from
// 0 at the leading empty segment) for site.
func replaceSegment(p string, n int, site string) string {
	segs := strings.Split(p, "/")
	if n < len(segs) {
		segs[n] = site
	}
	return strings.Join(segs, "/")
}
