package feed_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tommv/lbman/pkg/feed"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Engineering Blog</title>
    <item>
      <title>Scaling the edge &amp; beyond</title>
      <link> https://blog.example.com/edge </link>
      <description>&lt;p&gt;We rebuilt   the &lt;b&gt;edge&lt;/b&gt; layer.&lt;/p&gt;</description>
    </item>
    <item>
      <title>Post two</title>
      <link>https://blog.example.com/two</link>
      <description>Plain text body</description>
    </item>
    <item><title>Post three</title><link>https://blog.example.com/3</link><description>x</description></item>
    <item><title>Post four</title><link>https://blog.example.com/4</link><description>x</description></item>
    <item><title>Post five</title><link>https://blog.example.com/5</link><description>x</description></item>
    <item><title>Post six</title><link>https://blog.example.com/6</link><description>never shown</description></item>
  </channel>
</rss>`

func serveBody(t *testing.T, status int, contentType, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestFetch(t *testing.T) {
	t.Run("parses a feed and caps it at MaxItems", func(t *testing.T) {
		server := serveBody(t, http.StatusOK, "application/rss+xml", sampleRSS)

		f, err := feed.Fetch(context.Background(), server.URL)
		require.NoError(t, err)

		assert.Equal(t, "Engineering Blog", f.Title)
		require.Len(t, f.Items, feed.MaxItems)
		assert.Equal(t, "Post five", f.Items[4].Title)
	})

	t.Run("entities are decoded and markup is stripped", func(t *testing.T) {
		server := serveBody(t, http.StatusOK, "application/rss+xml", sampleRSS)

		f, err := feed.Fetch(context.Background(), server.URL)
		require.NoError(t, err)

		first := f.Items[0]
		assert.Equal(t, "Scaling the edge & beyond", first.Title)
		assert.Equal(t, "https://blog.example.com/edge", first.Link)
		assert.Equal(t, "We rebuilt the edge layer.", first.Description)
	})

	t.Run("non-200 responses are unavailable", func(t *testing.T) {
		server := serveBody(t, http.StatusServiceUnavailable, "text/html", "down")

		_, err := feed.Fetch(context.Background(), server.URL)
		assert.ErrorIs(t, err, feed.ErrUnavailable)
	})

	t.Run("malformed xml is unavailable", func(t *testing.T) {
		server := serveBody(t, http.StatusOK, "application/rss+xml", "<rss><channel><item>")

		_, err := feed.Fetch(context.Background(), server.URL)
		assert.ErrorIs(t, err, feed.ErrUnavailable)
	})

	t.Run("unreachable host is unavailable", func(t *testing.T) {
		server := serveBody(t, http.StatusOK, "application/rss+xml", sampleRSS)
		url := server.URL
		server.Close()

		_, err := feed.Fetch(context.Background(), url)
		assert.ErrorIs(t, err, feed.ErrUnavailable)
	})

	t.Run("a cancelled context aborts the fetch", func(t *testing.T) {
		blocked := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-blocked
		}))
		t.Cleanup(func() {
			close(blocked)
			server.Close()
		})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := feed.Fetch(ctx, server.URL)
		assert.ErrorIs(t, err, feed.ErrUnavailable)
	})
}
