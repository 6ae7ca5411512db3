package pdsweb

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// List fetches the archive listing page at baseURL and returns its
// hyperlink targets, excluding self and parent references. One network read
// per call; connectivity errors propagate to the caller.
func (c *Client) List(ctx context.Context, baseURL string) ([]string, error) {
	resp, err := c.get(ctx, c.listClient, baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", baseURL, err)
	}
	defer resp.Body.Close()

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse listing %s: %w", baseURL, err)
	}

	var hrefs []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && strings.EqualFold(n.Data, "a") {
			for _, attr := range n.Attr {
				if strings.EqualFold(attr.Key, "href") && keepHref(attr.Val) {
					hrefs = append(hrefs, attr.Val)
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	return hrefs, nil
}

func keepHref(href string) bool {
	switch href {
	case "", "./", "../", "/":
		return false
	}
	return true
}
