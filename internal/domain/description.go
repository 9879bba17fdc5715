package domain

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlainText strips markup from an admin-entered description so that search
// matches what shoppers read, not tag names or attribute values.
func PlainText(description string) string {
	if !strings.ContainsAny(description, "<&") {
		return collapseSpaces(description)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(description))
	if err != nil {
		return collapseSpaces(description)
	}

	doc.Find("script, style, noscript").Remove()
	doc.Find("br, p, div, li").Each(func(i int, s *goquery.Selection) {
		s.AppendHtml(" ")
	})

	return collapseSpaces(doc.Text())
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
