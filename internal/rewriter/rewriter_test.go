package rewriter

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRetriever struct {
	types map[string]string
	calls []string
}

func (f *fakeRetriever) Retrieve(_ context.Context, rawURL string) ([]byte, string, error) {
	f.calls = append(f.calls, rawURL)
	ct, ok := f.types[rawURL]
	if !ok {
		return nil, "", errors.New("unreachable")
	}
	return []byte{}, ct, nil
}

func pageURL(t *testing.T, raw string) *url.URL {
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestRewriteLocalReference(t *testing.T) {
	in := `<page><img src="./img/logo.png"/></page>`
	out, err := New(&fakeRetriever{}).Rewrite(context.Background(), in, pageURL(t, "https://h/p/index.html"), "s")
	require.NoError(t, err)
	assert.Contains(t, out, `src="/content/dam/s/p/img/logo.png"`)
	assert.NotContains(t, out, "./img/logo.png")
}

func TestRewriteExternalAnnotated(t *testing.T) {
	in := `<page><img src="https://cdn.other.com/x.png"/></page>`
	fake := &fakeRetriever{types: map[string]string{"https://cdn.other.com/x.png": "image/png"}}
	out, err := New(fake).Rewrite(context.Background(), in, pageURL(t, "https://h/p/index.html"), "s")
	require.NoError(t, err)
	// value untouched, mime annotation added
	assert.Contains(t, out, `src="https://cdn.other.com/x.png"`)
	assert.Contains(t, out, `mimetype="image/png"`)
}

func TestRewriteExternalProbeFailure(t *testing.T) {
	in := `<page><img src="https://cdn.other.com/x.png"/></page>`
	out, err := New(&fakeRetriever{}).Rewrite(context.Background(), in, pageURL(t, "https://h/p/index.html"), "s")
	require.NoError(t, err)
	assert.Contains(t, out, `src="https://cdn.other.com/x.png"`)
	assert.NotContains(t, out, "mimetype")
}

func TestRewriteLeavesOtherContentAlone(t *testing.T) {
	in := `<page><button label="Go">Go</button><txt>hello</txt></page>`
	out, err := New(&fakeRetriever{}).Rewrite(context.Background(), in, pageURL(t, "https://h/p/index.html"), "s")
	require.NoError(t, err)
	assert.Contains(t, out, `<button label="Go">Go</button>`)
	assert.Contains(t, out, `<txt>hello</txt>`)
}

func TestRewriteMalformedMarkup(t *testing.T) {
	_, err := New(&fakeRetriever{}).Rewrite(context.Background(), `<page><img src="x"`, pageURL(t, "https://h/p/index.html"), "s")
	assert.Error(t, err)
}
