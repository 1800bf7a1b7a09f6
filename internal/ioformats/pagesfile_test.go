package ioformats

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadPagesCSV(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "page.xml", `<page/>`)
	input := writeFile(t, dir, "pages.csv",
		"url,path,file\nhttps://h/a.html,/a.html,page.xml\nhttps://h/sub/,,\n")

	pages, err := ReadPages(input)
	require.NoError(t, err)
	require.Len(t, pages, 2)

	assert.Equal(t, "/a.html", pages[0].Path)
	assert.Equal(t, "<page/>", pages[0].Data)
	// path derived from the URL, markup left for the caller to fetch
	assert.Equal(t, "/sub/index.html", pages[1].Path)
	assert.Empty(t, pages[1].Data)
}

func TestReadPagesNDJSON(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "pages.ndjson",
		`{"url":"https://h/a.html","path":"/a.html","data":"<page/>"}`+"\n"+
			"https://h/b.html\n")

	pages, err := ReadPages(input)
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, "<page/>", pages[0].Data)
	assert.Equal(t, "/b.html", pages[1].Path)
}

func TestReadPagesEmptyInput(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "pages.ndjson", "\n")
	_, err := ReadPages(input)
	assert.Error(t, err)
}

func TestDerivePath(t *testing.T) {
	assert.Equal(t, "/index.html", derivePath("https://h"))
	assert.Equal(t, "/index.html", derivePath("https://h/"))
	assert.Equal(t, "/a/index.html", derivePath("https://h/a/"))
	assert.Equal(t, "/a/b.html", derivePath("https://h/a/b.html"))
}

func TestToUTF8(t *testing.T) {
	// ISO-8859-1 "café"
	latin1 := []byte{'c', 'a', 'f', 0xe9}
	out, err := ToUTF8(latin1, "text/html; charset=iso-8859-1")
	require.NoError(t, err)
	assert.Equal(t, "café", out)

	out, err = ToUTF8([]byte("plain ascii"), "")
	require.NoError(t, err)
	assert.Equal(t, "plain ascii", out)
}
