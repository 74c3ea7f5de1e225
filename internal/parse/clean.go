package parse

import "github.com/PuerkitoBio/goquery"

// NoiseSelector matches page chrome that never carries article content.
const NoiseSelector = "script, style, nav, footer, header, aside, form"

// RemoveSelectors deletes every match of selector. A blank selector is a no-op.
func RemoveSelectors(doc *goquery.Document, selector string) error {
	if doc == nil || selector == "" {
		return nil
	}
	doc.Find(selector).Remove()
	return nil
}

// RemoveNoise strips NoiseSelector matches and returns how many were removed.
func RemoveNoise(doc *goquery.Document) int {
	if doc == nil {
		return 0
	}
	sel := doc.Find(NoiseSelector)
	n := sel.Length()
	sel.Remove()
	return n
}
