package fetch

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/aqua777/campus-rag-core/model"
)

// link is a discovered document anchor, category-tagged by the heading
// it fell under.
type link struct {
	URL      string
	Title    string
	Category model.CategoryID
}

// discover walks indexHTML's anchors in document order, assigning each
// document-bearing link to the most recently seen H2/H3 heading,
// cycling through model.CategoryOrder (§4.1). It returns the links and
// the number of category headings actually recognized, so the caller
// can validate that count against len(model.CategoryOrder) (§9).
func discover(indexHTML string, indexURL string) ([]link, int, error) {
	root, err := html.Parse(strings.NewReader(indexHTML))
	if err != nil {
		return nil, 0, err
	}

	base, err := url.Parse(indexURL)
	if err != nil {
		return nil, 0, err
	}

	var links []link
	headingCount := 0
	category := model.CategoryUncategorized

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "h2", "h3":
				headingCount++
				idx := (headingCount - 1) % len(model.CategoryOrder)
				category = model.CategoryOrder[idx]
			case "a":
				if href, ok := attr(n, "href"); ok {
					if resolved := resolveURL(base, href); resolved != "" && isDocumentLink(resolved) {
						links = append(links, link{
							URL:      resolved,
							Title:    strings.TrimSpace(textContent(n)),
							Category: category,
						})
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return links, headingCount, nil
}

func isDocumentLink(resolvedURL string) bool {
	return hasKnownExtension(resolvedURL) || isShareLink(resolvedURL)
}

// resolveURL joins href against base per §4.1: absolute URLs pass
// through, root-relative URLs are joined to the index host. It returns
// "" for hrefs that aren't documents at all (mailto:, javascript:, bare
// fragments).
func resolveURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") ||
		strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "javascript:") {
		return ""
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(u).String()
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
