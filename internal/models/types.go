package models

import (
	"context"
	"net/url"
)

// RefAttr is the markup attribute holding asset references.
const RefAttr = "src"

// MimeAttr is the annotation attribute recording a discovered mime type
// on references that stay external.
const MimeAttr = "mimetype"

// RawPage is one fetched document as handed to the packager.
type RawPage struct {
	Path string `json:"path"`
	URL  string `json:"url"`
	Data string `json:"data,omitempty"`
	File string `json:"file,omitempty"`
}

// Page is a RawPage after path mapping and markup rewriting. Immutable
// once the assembler has filled the derived fields.
type Page struct {
	SourcePath string
	SourceURL  *url.URL
	RawMarkup  string

	RepositoryPath   string
	ContentEntryPath string
	RewrittenMarkup  string
}

// ResolvedAsset is the classification result for one reference found in
// a page. Include reports whether the asset is bundled into the package;
// when false, RepositoryPath is empty and RewrittenValue equals RawValue.
type ResolvedAsset struct {
	RawValue       string
	ResolvedURL    *url.URL
	RepositoryPath string
	RewrittenValue string
	Include        bool
	Content        []byte
	MimeType       string
}

// Retriever fetches a resource and reports its body and content type.
type Retriever interface {
	Retrieve(ctx context.Context, rawURL string) (body []byte, contentType string, err error)
}

// BuildContext carries all per-build state. One instance per build,
// never shared: the dedup table would race across concurrent builds.
type BuildContext struct {
	Site  string
	Pages []*Page

	Assets    []*ResolvedAsset
	seen      map[string]bool
	collected bool
}

// NewBuildContext starts an empty context for one package build.
func NewBuildContext(site string) *BuildContext {
	return &BuildContext{Site: site, seen: map[string]bool{}}
}

// Seen reports whether a repository path was already claimed by an
// earlier asset in this build.
func (bc *BuildContext) Seen(repoPath string) bool {
	return bc.seen[repoPath]
}

// Claim records a repository path as taken and appends the asset to the
// build's ordered asset list.
func (bc *BuildContext) Claim(a *ResolvedAsset) {
	bc.seen[a.RepositoryPath] = true
	bc.Assets = append(bc.Assets, a)
}

// Collected reports whether the asset collection pass already ran.
func (bc *BuildContext) Collected() bool { return bc.collected }

// MarkCollected makes subsequent collection calls no-ops.
func (bc *BuildContext) MarkCollected() { bc.collected = true }
