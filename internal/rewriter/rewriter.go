// Package rewriter rewrites reference attributes in page markup to
// their repository paths, leaving external references untouched apart
// from a best-effort mime annotation.
package rewriter

import (
	"context"
	"net/url"
	"strings"

	"github.com/beevik/etree"

	"sitevault-packager/internal/classifier"
	"sitevault-packager/internal/collector"
	"sitevault-packager/internal/models"
)

type Rewriter struct {
	fetch models.Retriever
}

func New(fetch models.Retriever) *Rewriter {
	return &Rewriter{fetch: fetch}
}

// Rewrite parses the page markup, classifies every element carrying the
// reference attribute and overwrites that attribute with the classified
// rewritten value. References that stay external keep their value; when
// such a reference is an absolute URL, a fetch probe may add a mime
// annotation attribute. Unparsable markup is a fatal error for the
// build. Non-reference content and attribute order pass through the
// serializer untouched.
func (rw *Rewriter) Rewrite(ctx context.Context, rawMarkup string, pageURL *url.URL, site string) (string, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.Permissive = true
	if err := doc.ReadFromString(rawMarkup); err != nil {
		return "", err
	}

	for _, el := range doc.FindElements("//*[@" + models.RefAttr + "]") {
		raw := el.SelectAttrValue(models.RefAttr, "")
		res := classifier.Classify(raw, pageURL, site)
		if !res.Include && res.ResolvedURL != nil && strings.HasPrefix(raw, "http") {
			if mt := rw.probeMime(ctx, res.ResolvedURL); mt != "" {
				el.CreateAttr(models.MimeAttr, mt)
			}
		}
		el.CreateAttr(models.RefAttr, res.RewrittenValue)
	}

	return doc.WriteToString()
}

// probeMime asks the remote side for a content type. Best effort: any
// failure just means no annotation.
func (rw *Rewriter) probeMime(ctx context.Context, u *url.URL) string {
	if rw.fetch == nil {
		return ""
	}
	_, contentType, err := rw.fetch.Retrieve(ctx, u.String())
	if err != nil {
		return ""
	}
	return collector.ResolveMime(contentType, u.Path)
}
