package rss

import (
	"encoding/xml"
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"

	"aniscout/pkg/models"
)

// summaryMaxChars truncates item summaries; the untruncated cleaned text
// is kept separately for entity extraction.
const summaryMaxChars = 500

var (
	htmlTagPattern    = regexp.MustCompile(`<[^>]+>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// cleanHTML decodes entities, strips tags and collapses whitespace, in
// that order.
func cleanHTML(text string) string {
	if text == "" {
		return ""
	}

	text = html.UnescapeString(text)
	text = htmlTagPattern.ReplaceAllString(text, "")
	text = whitespacePattern.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}

func truncate(s string, maxChars int) string {
	runes := []rune(s)
	if len(runes) <= maxChars {
		return s
	}
	return string(runes[:maxChars])
}

// dateLayouts covers RFC 2822 pubDate variants and ISO-8601 timestamps.
var dateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"2 Jan 2006 15:04:05 -0700",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// parseDate returns the zero time when the string matches no known layout;
// items without a parseable publish date are treated as always-fresh.
func parseDate(dateStr string) time.Time {
	if dateStr == "" {
		return time.Time{}
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, dateStr); err == nil {
			return t
		}
	}

	return time.Time{}
}

type rssDocument struct {
	XMLName xml.Name   `xml:"rss"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Items []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description"`
	PubDate     string   `xml:"pubDate"`
	Author      string   `xml:"author"`
	Creator     string   `xml:"http://purl.org/dc/elements/1.1/ creator"`
	GUID        string   `xml:"guid"`
	Categories  []string `xml:"category"`
}

type atomDocument struct {
	XMLName xml.Name    `xml:"http://www.w3.org/2005/Atom feed"`
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	Title     string     `xml:"title"`
	Links     []atomLink `xml:"link"`
	Content   string     `xml:"content"`
	Summary   string     `xml:"summary"`
	Updated   string     `xml:"updated"`
	Published string     `xml:"published"`
	Author    struct {
		Name string `xml:"name"`
	} `xml:"author"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
}

// parseFeed auto-detects the feed format: RSS 2.0 items first, then Atom
// entries. A well-formed feed with no items is a valid empty result, not
// an error.
func parseFeed(content []byte, sourceKey string, source Source) ([]models.FeedItem, error) {
	var rssDoc rssDocument
	rssErr := xml.Unmarshal(content, &rssDoc)
	if rssErr == nil && len(rssDoc.Channel.Items) > 0 {
		return convertRSSItems(rssDoc.Channel.Items, sourceKey, source), nil
	}

	var atomDoc atomDocument
	atomErr := xml.Unmarshal(content, &atomDoc)
	if atomErr == nil && len(atomDoc.Entries) > 0 {
		return convertAtomEntries(atomDoc.Entries, sourceKey, source), nil
	}

	if rssErr == nil || atomErr == nil {
		return nil, nil
	}

	return nil, fmt.Errorf("parsing feed XML: %w", rssErr)
}

func convertRSSItems(items []rssItem, sourceKey string, source Source) []models.FeedItem {
	var result []models.FeedItem

	for _, item := range items {
		// Items missing a title or link are dropped.
		if item.Title == "" || item.Link == "" {
			continue
		}

		author := item.Author
		if author == "" {
			author = item.Creator
		}

		cleaned := cleanHTML(item.Description)

		result = append(result, models.FeedItem{
			Title:            cleanHTML(item.Title),
			Link:             item.Link,
			Source:           sourceKey,
			SourceName:       source.Name,
			PublishedAt:      parseDate(item.PubDate),
			Summary:          truncate(cleaned, summaryMaxChars),
			RawText:          cleaned,
			Categories:       item.Categories,
			Author:           author,
			GUID:             item.GUID,
			ReliabilityScore: source.ReliabilityScore,
		})
	}

	return result
}

func convertAtomEntries(entries []atomEntry, sourceKey string, source Source) []models.FeedItem {
	var result []models.FeedItem

	for _, entry := range entries {
		link := ""
		if len(entry.Links) > 0 {
			link = entry.Links[0].Href
		}

		if entry.Title == "" || link == "" {
			continue
		}

		content := entry.Content
		if content == "" {
			content = entry.Summary
		}

		updated := entry.Updated
		if updated == "" {
			updated = entry.Published
		}

		cleaned := cleanHTML(content)

		result = append(result, models.FeedItem{
			Title:            cleanHTML(entry.Title),
			Link:             link,
			Source:           sourceKey,
			SourceName:       source.Name,
			PublishedAt:      parseDate(updated),
			Summary:          truncate(cleaned, summaryMaxChars),
			RawText:          cleaned,
			Author:           entry.Author.Name,
			GUID:             link,
			ReliabilityScore: source.ReliabilityScore,
		})
	}

	return result
}
