// Package page narrows a fetched HTML document to its inline script text.
package page

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ScriptText returns the bodies of the inline <script> elements in html that
// contain token, joined by newlines. If html cannot be parsed or no inline
// script contains token, html is returned unchanged.
func ScriptText(html, token string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}

	var parts []string
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		if _, external := s.Attr("src"); external {
			return
		}
		if text := s.Text(); strings.Contains(text, token) {
			parts = append(parts, text)
		}
	})

	if len(parts) == 0 {
		return html
	}
	return strings.Join(parts, "\n")
}
