package pdsweb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListFiltersSelfAndParentLinks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>
			<a href="a.xml">a</a>
			<a href="./">.</a>
			<a href="../">..</a>
			<a href="/">root</a>
			<a href="b.tab">b</a>
		</body></html>`))
	}))
	defer srv.Close()

	c := NewClient(DefaultClientConfig())
	hrefs, err := c.List(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Contains(t, hrefs, "a.xml")
	assert.Contains(t, hrefs, "b.tab")
	assert.NotContains(t, hrefs, "./")
	assert.NotContains(t, hrefs, "../")
	assert.NotContains(t, hrefs, "/")
}

func TestListUpperCaseAnchors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<HTML><A HREF="1998_016_grs.xml">x</A></HTML>`))
	}))
	defer srv.Close()

	c := NewClient(DefaultClientConfig())
	hrefs, err := c.List(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, []string{"1998_016_grs.xml"}, hrefs)
}

func TestListPropagatesServerErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewClient(DefaultClientConfig())
	_, err := c.List(context.Background(), srv.URL)
	require.Error(t, err)
}

func TestListSendsUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(`<a href="x.dat">x</a>`))
	}))
	defer srv.Close()

	c := NewClient(DefaultClientConfig())
	_, err := c.List(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, defaultUserAgent, gotUA)
}
