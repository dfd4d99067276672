package feed

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"

	"github.com/tommv/lbman/pkg/logging"
)

// ErrUnavailable covers every way a feed fetch can fail: network, bad status,
// malformed XML. Callers show one generic message and render no items.
var ErrUnavailable = errors.New("feed unavailable")

// MaxItems caps how many entries the dashboard widget shows.
const MaxItems = 5

type Item struct {
	Title       string
	Link        string
	Description string
}

type Feed struct {
	Title string
	Items []Item
}

// rss is the subset of the RSS 2.0 document the widget cares about.
type rss struct {
	Channel struct {
		Title string    `xml:"title"`
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
}

// Fetch downloads and parses an RSS feed. Only the first MaxItems entries
// are kept, with title and description reduced to plain decoded text.
// Cancelling ctx aborts an in-flight fetch; a cancelled or failed fetch
// yields no partial result.
func Fetch(ctx context.Context, url string) (*Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		logging.LogError("feed fetch failed for %s: %v", url, err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logging.LogError("feed fetch for %s returned status %d", url, resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	dec := xml.NewDecoder(resp.Body)
	dec.CharsetReader = charset.NewReaderLabel

	var doc rss
	if err := dec.Decode(&doc); err != nil {
		logging.LogError("feed parse failed for %s: %v", url, err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	f := &Feed{Title: htmlText(doc.Channel.Title)}
	for _, it := range doc.Channel.Items {
		if len(f.Items) == MaxItems {
			break
		}
		f.Items = append(f.Items, Item{
			Title:       htmlText(it.Title),
			Link:        strings.TrimSpace(it.Link),
			Description: htmlText(it.Description),
		})
	}
	return f, nil
}

// htmlText strips markup and decodes entities, collapsing whitespace. Feed
// descriptions routinely embed encoded HTML fragments.
func htmlText(s string) string {
	node, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(node)

	return strings.Join(strings.Fields(b.String()), " ")
}
