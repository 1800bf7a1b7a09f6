// Package assembler orchestrates one package build: page mapping and
// rewriting, asset collection, manifest and metadata emission, archive
// finalization.
package assembler

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"sitevault-packager/internal/collector"
	"sitevault-packager/internal/models"
	"sitevault-packager/internal/pathmap"
	"sitevault-packager/internal/rewriter"
	"sitevault-packager/internal/sanitize"
	"sitevault-packager/internal/vault"
	"sitevault-packager/pkg/logger"
)

type Assembler struct {
	fetch models.Retriever
	log   *logger.Logger
	now   func() time.Time
}

func New(fetch models.Retriever, log *logger.Logger) *Assembler {
	return &Assembler{fetch: fetch, log: log, now: time.Now}
}

// Result is one finished package, held in memory until persisted.
type Result struct {
	RunID       string
	PackageName string
	Archive     []byte
	FilterPaths []string
	Pages       []*models.Page
	Assets      []*models.ResolvedAsset
}

// Build assembles a package from the given pages. An empty page list
// yields a nil Result and no error. Asset fetch failures degrade the
// affected entry; any other failure aborts the build.
func (a *Assembler) Build(ctx context.Context, rawPages []models.RawPage, siteValue string) (*Result, error) {
	if len(rawPages) == 0 {
		return nil, nil
	}
	site, err := sanitize.SiteName(siteValue)
	if err != nil {
		return nil, err
	}

	res := &Result{
		RunID:       uuid.NewString(),
		PackageName: packageName(site, rawPages),
	}
	a.log.Infof("build %s: packaging %d page(s) as %q", res.RunID, len(rawPages), res.PackageName)

	bc := models.NewBuildContext(site)
	rw := rewriter.New(a.fetch)
	arch := vault.NewArchive()

	for _, rp := range rawPages {
		u, err := url.Parse(rp.URL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("page %s: invalid source url %q", rp.Path, rp.URL)
		}
		p := &models.Page{SourcePath: rp.Path, SourceURL: u, RawMarkup: rp.Data}
		p.RepositoryPath = pathmap.PagePath(p.SourcePath, site)
		p.ContentEntryPath = p.RepositoryPath + vault.ContentEntrySuffix
		p.RewrittenMarkup, err = rw.Rewrite(ctx, p.RawMarkup, p.SourceURL, site)
		if err != nil {
			return nil, fmt.Errorf("page %s: rewrite: %w", rp.Path, err)
		}
		if err := arch.AddEntry(vault.ContentEntry(p.RepositoryPath), []byte(p.RewrittenMarkup)); err != nil {
			return nil, err
		}
		bc.Pages = append(bc.Pages, p)
	}

	if err := collector.New(a.fetch, a.log).Collect(ctx, bc); err != nil {
		return nil, fmt.Errorf("collect assets: %w", err)
	}
	for _, asset := range bc.Assets {
		desc, err := vault.AssetDescriptor(asset.MimeType)
		if err != nil {
			return nil, err
		}
		if err := arch.AddEntry(vault.ContentEntry(asset.RepositoryPath), desc); err != nil {
			return nil, err
		}
		// A failed fetch still reserves the path; the rendition entry
		// is just empty.
		if err := arch.AddEntry(vault.BinaryEntry(asset.RepositoryPath), asset.Content); err != nil {
			return nil, err
		}
	}

	for _, p := range bc.Pages {
		res.FilterPaths = append(res.FilterPaths, p.RepositoryPath)
	}
	for _, asset := range bc.Assets {
		res.FilterPaths = append(res.FilterPaths, asset.RepositoryPath)
	}
	filter, err := vault.Filter(res.FilterPaths)
	if err != nil {
		return nil, err
	}
	if err := arch.AddEntry(vault.FilterEntry, filter); err != nil {
		return nil, err
	}
	props, err := vault.Properties(res.PackageName, a.now())
	if err != nil {
		return nil, err
	}
	if err := arch.AddEntry(vault.PropertiesEntry, props); err != nil {
		return nil, err
	}

	res.Archive, err = arch.Finalize()
	if err != nil {
		return nil, fmt.Errorf("finalize archive: %w", err)
	}
	res.Pages = bc.Pages
	res.Assets = bc.Assets
	a.log.Infof("build %s: %d page(s), %d asset(s), %d bytes", res.RunID, len(res.Pages), len(res.Assets), len(res.Archive))
	return res, nil
}

// WriteFile persists the archive as <packageName>.zip under dir and
// returns the written path.
func (r *Result) WriteFile(dir string) (string, error) {
	path := filepath.Join(dir, r.PackageName+".zip")
	if err := os.WriteFile(path, r.Archive, 0o644); err != nil {
		return "", fmt.Errorf("persist package: %w", err)
	}
	return path, nil
}

// packageName is the sanitized site label, with the single page's last
// path segment (extension dropped, sanitized) appended when there is
// exactly one page.
func packageName(site string, pages []models.RawPage) string {
	if len(pages) != 1 {
		return site
	}
	seg := pages[0].Path
	if i := strings.LastIndex(seg, "/"); i >= 0 {
		seg = seg[i+1:]
	}
	if i := strings.LastIndex(seg, "."); i >= 0 {
		seg = seg[:i]
	}
	if seg = sanitize.Sanitize(seg); seg == "" {
		return site
	}
	return site + "_" + seg
}
