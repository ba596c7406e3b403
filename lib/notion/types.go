// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package notion

import (
	"encoding/json"
	"strings"
)

// RichText is one segment of a Notion rich text array. Requests set
// Text; responses also carry PlainText.
type RichText struct {
	Type      string       `json:"type,omitempty"`
	Text      *TextContent `json:"text,omitempty"`
	PlainText string       `json:"plain_text,omitempty"`
}

// TextContent is the payload of a "text" rich text segment.
type TextContent struct {
	Content string `json:"content"`
}

// Text returns a single-segment rich text array holding content.
func Text(content string) []RichText {
	return []RichText{{Type: "text", Text: &TextContent{Content: content}}}
}

// PlainText concatenates the plain_text of every segment, falling back
// to the text content for request-side values.
func PlainText(segments []RichText) string {
	var builder strings.Builder
	for _, segment := range segments {
		switch {
		case segment.PlainText != "":
			builder.WriteString(segment.PlainText)
		case segment.Text != nil:
			builder.WriteString(segment.Text.Content)
		}
	}
	return builder.String()
}

// Parent identifies where a database or page is created.
type Parent struct {
	Type       string `json:"type,omitempty"`
	PageID     string `json:"page_id,omitempty"`
	DatabaseID string `json:"database_id,omitempty"`
}

// PageParent returns a page_id parent.
func PageParent(pageID string) Parent {
	return Parent{Type: "page_id", PageID: pageID}
}

// DatabaseParent returns a database_id parent, as used for rows.
func DatabaseParent(databaseID string) Parent {
	return Parent{DatabaseID: databaseID}
}

// Database is a Notion database object.
type Database struct {
	Object     string                    `json:"object,omitempty"`
	ID         string                    `json:"id"`
	Title      []RichText                `json:"title"`
	Properties map[string]PropertySchema `json:"properties"`
	URL        string                    `json:"url,omitempty"`
	Archived   bool                      `json:"archived,omitempty"`
}

// PlainTitle returns the database title as a plain string.
func (d *Database) PlainTitle() string {
	return PlainText(d.Title)
}

// Page is a Notion page object. Property values are left undecoded.
type Page struct {
	Object     string                     `json:"object,omitempty"`
	ID         string                     `json:"id"`
	URL        string                     `json:"url,omitempty"`
	Properties map[string]json.RawMessage `json:"properties,omitempty"`
}

// SearchFilter restricts search results to one object type.
type SearchFilter struct {
	Property string `json:"property"`
	Value    string `json:"value"`
}

// DatabaseFilter limits a search to database objects.
func DatabaseFilter() *SearchFilter {
	return &SearchFilter{Property: "object", Value: "database"}
}

// SearchRequest is the body of POST /search.
type SearchRequest struct {
	Query       string        `json:"query,omitempty"`
	Filter      *SearchFilter `json:"filter,omitempty"`
	StartCursor string        `json:"start_cursor,omitempty"`
	PageSize    int           `json:"page_size,omitempty"`
}

// SearchResponse is one page of search results. Only database results
// are decoded meaningfully; the search filter keeps pages out.
type SearchResponse struct {
	Results    []Database `json:"results"`
	HasMore    bool       `json:"has_more"`
	NextCursor string     `json:"next_cursor"`
}

// CreateDatabaseRequest is the body of POST /databases.
type CreateDatabaseRequest struct {
	Parent     Parent                    `json:"parent"`
	Title      []RichText                `json:"title"`
	Properties map[string]PropertySchema `json:"properties"`
}

// UpdateDatabaseRequest is the body of PATCH /databases/{id}.
type UpdateDatabaseRequest struct {
	Properties map[string]PropertySchema `json:"properties"`
}

// CreatePageRequest is the body of POST /pages.
type CreatePageRequest struct {
	Parent     Parent                   `json:"parent"`
	Properties map[string]PropertyValue `json:"properties"`
}

// QueryDatabaseRequest is the body of POST /databases/{id}/query.
type QueryDatabaseRequest struct {
	PageSize    int    `json:"page_size,omitempty"`
	StartCursor string `json:"start_cursor,omitempty"`
}

// QueryDatabaseResponse is one page of query results. StatusCode is
// the HTTP status the server answered with.
type QueryDatabaseResponse struct {
	Results    []Page `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor"`
	StatusCode int    `json:"-"`
}
