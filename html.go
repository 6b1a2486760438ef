package lingo

import (
	"bytes"
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// IgnoredTags contains HTML tags whose content should not be translated.
var IgnoredTags = map[string]bool{
	"script":   true,
	"style":    true,
	"code":     true,
	"pre":      true,
	"textarea": true,
	"noscript": true,
}

// HTMLResult is the outcome of a markup-preserving translation.
type HTMLResult struct {
	Content         string // Translated HTML
	TranslatedCount int    // Translatable text nodes rewritten
	TotalNodes      int    // Translatable text nodes found
}

// TranslateHTML translates the text content of an HTML document while
// preserving its markup. Text inside IgnoredTags or under an element
// with a data-no-translate attribute is left alone. Each unique text
// node goes through the normal dispatch pipeline, so dictionary rules,
// caching and rate limits all apply per node.
func (d *Dispatcher) TranslateHTML(ctx context.Context, content, sourceLang, targetLang string, opts ...TranslateOption) (*HTMLResult, error) {
	if BaseLang(sourceLang) == BaseLang(targetLang) {
		return &HTMLResult{Content: content}, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, err
	}

	var textNodes []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if IgnoredTags[strings.ToLower(n.Data)] {
				return
			}
			for _, attr := range n.Attr {
				if attr.Key == "data-no-translate" {
					return
				}
			}
		}
		if n.Type == html.TextNode && strings.TrimSpace(n.Data) != "" {
			textNodes = append(textNodes, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, root := range doc.Nodes {
		walk(root)
	}

	// Translate each unique trimmed text once; duplicates reuse the result.
	translations := make(map[string]string)
	translated := 0
	for _, n := range textNodes {
		trimmed := strings.TrimSpace(n.Data)
		result, ok := translations[trimmed]
		if !ok {
			result, err = d.Translate(ctx, trimmed, sourceLang, targetLang, opts...)
			if err != nil {
				return nil, err
			}
			translations[trimmed] = result
		}
		if result != trimmed {
			n.Data = strings.Replace(n.Data, trimmed, result, 1)
			translated++
		}
	}

	htmlTag := doc.Find("html")
	if htmlTag.Length() > 0 {
		htmlTag.SetAttr("lang", ToHTMLLang(targetLang))
		htmlTag.SetAttr("dir", GetDirection(targetLang))
	}

	out, err := renderDocument(doc)
	if err != nil {
		return nil, err
	}
	return &HTMLResult{
		Content:         out,
		TranslatedCount: translated,
		TotalNodes:      len(textNodes),
	}, nil
}

func renderDocument(doc *goquery.Document) (string, error) {
	var buf bytes.Buffer
	for _, n := range doc.Nodes {
		if err := html.Render(&buf, n); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}
