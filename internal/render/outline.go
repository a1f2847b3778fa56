package render

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Section is one heading in the rendered document, nested by level.
type Section struct {
	Title    string
	ID       string // Anchor id from the heading element (may be empty)
	Level    int    // 1-6
	Children []*Section
}

// Outline walks rendered HTML and builds a heading tree. A heading nests under
// the closest preceding heading of a lower level.
func Outline(r io.Reader) ([]*Section, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	type stackEntry struct {
		section *Section
		level   int
	}

	// Root is level 0, all h1+ nest under it.
	root := &Section{}
	stack := []stackEntry{{section: root, level: 0}}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if level := headingLevel(n.Data); level > 0 {
				s := &Section{
					Title: textContent(n),
					ID:    attr(n, "id"),
					Level: level,
				}
				for len(stack) > 1 && stack[len(stack)-1].level >= level {
					stack = stack[:len(stack)-1]
				}
				parent := stack[len(stack)-1].section
				parent.Children = append(parent.Children, s)
				stack = append(stack, stackEntry{section: s, level: level})
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	if body := findBody(doc); body != nil {
		walk(body)
	} else {
		walk(doc)
	}

	return root.Children, nil
}

func headingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
