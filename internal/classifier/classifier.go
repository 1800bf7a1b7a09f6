// Package classifier decides, for every reference found in a page,
// whether it points at content this package must bundle.
package classifier

import (
	"net/url"
	"strings"

	"sitevault-packager/internal/models"
	"sitevault-packager/internal/pathmap"
)

// Classify resolves one raw reference against its owning page. The
// outcome either claims the reference for this package (Include true,
// with a repository path and rewritten value) or leaves it external and
// byte-identical, keeping the resolved URL around when it can still be
// probed for a mime type.
func Classify(raw string, pageURL *url.URL, site string) models.ResolvedAsset {
	out := models.ResolvedAsset{RawValue: raw, RewrittenValue: raw}
	if raw == "" {
		return out
	}

	switch {
	case strings.HasPrefix(raw, "http"):
		u, err := url.Parse(raw)
		if err != nil || u.Host == "" {
			return out
		}
		if u.Scheme == pageURL.Scheme && u.Host == pageURL.Host {
			return included(out, u, site)
		}
		// Different origin: stays external, URL kept for mime probing.
		out.ResolvedURL = u
		return out

	case strings.HasPrefix(raw, "/"):
		// Covers /content/dam/... and any other site-absolute path.
		u, err := url.Parse(origin(pageURL) + raw)
		if err != nil {
			return out
		}
		return included(out, u, site)

	case strings.HasPrefix(raw, "./"):
		u, err := url.Parse(origin(pageURL) + parentDir(pageURL.Path) + raw[1:])
		if err != nil {
			return out
		}
		return included(out, u, site)
	}

	// Bare opaque identifier, mailto:, data:, etc.
	return out
}

func included(out models.ResolvedAsset, u *url.URL, site string) models.ResolvedAsset {
	out.Include = true
	out.ResolvedURL = u
	out.RepositoryPath = pathmap.AssetPath(u, site)
	out.RewrittenValue = out.RepositoryPath
	return out
}

func origin(u *url.URL) string {
	return u.Scheme + "://" + u.Host
}

// parentDir returns the page path up to and excluding its last slash.
func parentDir(p string) string {
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[:i]
	}
	return ""
}
