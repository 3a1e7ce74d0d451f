package schema

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

const descriptionWords = 55

// plainText strips markup from stored HTML, decodes entities, collapses whitespace and
// NFC-normalizes the result. Script and style bodies are dropped.
func plainText(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return norm.NFC.String(strings.Join(strings.Fields(b.String()), " "))
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			tt := z.Token()
			switch {
			case isRawTextTag(tt.Data) && tt.Type == html.StartTagToken:
				skip++
			case isRawTextTag(tt.Data) && tt.Type == html.EndTagToken && skip > 0:
				skip--
			}
			if isBlockTag(tt.Data) {
				b.WriteByte(' ')
			}
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		}
	}
}

func isRawTextTag(name string) bool {
	return name == "script" || name == "style"
}

func isBlockTag(name string) bool {
	switch name {
	case "br", "p", "div", "li", "ul", "ol", "tr", "td", "th", "table", "blockquote",
		"h1", "h2", "h3", "h4", "h5", "h6", "figure", "figcaption", "section", "article":
		return true
	}
	return false
}

// truncateWords keeps the first n words, marking a cut with an ellipsis.
func truncateWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) <= n {
		return s
	}
	return strings.Join(words[:n], " ") + "…"
}

// description derives a description from an excerpt, falling back to the content.
func description(excerpt, body string) string {
	if d := plainText(excerpt); d != "" {
		return d
	}
	return truncateWords(plainText(body), descriptionWords)
}
