package pathmap

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, raw string) *url.URL {
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestPagePath(t *testing.T) {
	assert.Equal(t, "/content/s/products/index.html", PagePath("/products/index.html", "s"))
	// already under the content root: only the site segment changes
	assert.Equal(t, "/content/s/products/index.html", PagePath("/content/old/products/index.html", "s"))
}

func TestPagePathIdempotent(t *testing.T) {
	once := PagePath("/a/b.html", "s")
	assert.Equal(t, once, PagePath(once, "s"))
}

func TestAssetPathFoldsQuery(t *testing.T) {
	u := mustParse(t, "https://h/1/2/a/b/x.png?p=1")
	assert.Equal(t, "/content/dam/s/1/2/a/b/x_p1.png", AssetPath(u, "s"))

	u = mustParse(t, "https://h/img/photo.jpg?w=200&h=100")
	assert.Equal(t, "/content/dam/s/img/photo_w200_h100.jpg", AssetPath(u, "s"))
}

func TestAssetPathNoQueryNoExt(t *testing.T) {
	u := mustParse(t, "https://h/downloads/report")
	assert.Equal(t, "/content/dam/s/downloads/report", AssetPath(u, "s"))
}

func TestAssetPathAdoptsManagedTree(t *testing.T) {
	// under /content/dam/ the path is adopted; the query is ignored
	u := mustParse(t, "https://h/content/dam/old/assets/pic.jpg?w=500")
	assert.Equal(t, "/content/dam/s/assets/pic.jpg", AssetPath(u, "s"))
}
