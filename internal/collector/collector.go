// Package collector walks every page of a build, classifies each
// reference it finds, and produces the deduplicated ordered asset list
// with fetched content.
package collector

import (
	"context"
	"mime"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"sitevault-packager/internal/classifier"
	"sitevault-packager/internal/models"
	"sitevault-packager/pkg/logger"
)

// extMime backs mime-type resolution when the response carries no
// usable Content-Type header.
var extMime = map[string]string{
	".html": "text/html",
	".css":  "text/css",
	".js":   "application/javascript",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".gif":  "image/gif",
}

type Collector struct {
	fetch models.Retriever
	log   *logger.Logger
}

func New(fetch models.Retriever, log *logger.Logger) *Collector {
	return &Collector{fetch: fetch, log: log}
}

// Collect fills bc.Assets from the raw markup of every page in bc.
// Idempotent per build: a second call is a no-op. Deduplication is by
// repository path, first occurrence wins and is the only one fetched;
// the dedup check happens before any fetch is issued, so retrieval is
// strictly sequential in discovery order.
func (c *Collector) Collect(ctx context.Context, bc *models.BuildContext) error {
	if bc.Collected() {
		return nil
	}
	for _, page := range bc.Pages {
		refs, err := extractRefs(page.RawMarkup)
		if err != nil {
			return err
		}
		for _, raw := range refs {
			res := classifier.Classify(raw, page.SourceURL, bc.Site)
			if !res.Include || bc.Seen(res.RepositoryPath) {
				continue
			}
			asset := res
			c.fetchAsset(ctx, &asset)
			bc.Claim(&asset)
		}
	}
	bc.MarkCollected()
	return nil
}

// fetchAsset retrieves the asset body and settles its mime type. A
// failed fetch degrades the asset to empty content; the build goes on.
func (c *Collector) fetchAsset(ctx context.Context, a *models.ResolvedAsset) {
	body, contentType, err := c.fetch.Retrieve(ctx, a.ResolvedURL.String())
	if err != nil {
		c.log.Warnf("asset fetch failed, bundling empty entry: %s: %v", a.ResolvedURL, err)
	} else {
		a.Content = body
	}
	a.MimeType = ResolveMime(contentType, a.ResolvedURL.Path)
}

// ResolveMime picks the mime type from the response header first, then
// from the path extension, else empty.
func ResolveMime(contentType, path string) string {
	if contentType != "" {
		if mediaType, _, err := mime.ParseMediaType(contentType); err == nil && mediaType != "" {
			return mediaType
		}
	}
	if i := strings.LastIndex(path, "."); i >= 0 {
		if mt, ok := extMime[strings.ToLower(path[i:])]; ok {
			return mt
		}
	}
	return ""
}

// extractRefs returns the value of the reference attribute for every
// element carrying it, in document order.
func extractRefs(markup string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, err
	}
	var refs []string
	doc.Find("[" + models.RefAttr + "]").Each(func(i int, s *goquery.Selection) {
		v, _ := s.Attr(models.RefAttr)
		refs = append(refs, v)
	})
	return refs, nil
}
