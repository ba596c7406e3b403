// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package notion

// Property type names.
const (
	TypeTitle    = "title"
	TypeRichText = "rich_text"
	TypeSelect   = "select"
	TypeURL      = "url"
	TypeDate     = "date"
	TypeRelation = "relation"
)

// PropertySchema is a database property definition, a JSON object
// keyed by its type: {"select": {"options": [...]}}. Schemas read back
// from Notion also carry "id", "name", and "type".
type PropertySchema map[string]any

// Type returns the property type: the "type" field when present, else
// the single type key of a request-side schema.
func (s PropertySchema) Type() string {
	if typeName, ok := s["type"].(string); ok {
		return typeName
	}
	for key := range s {
		if key != "id" && key != "name" && key != "description" {
			return key
		}
	}
	return ""
}

// SelectOptions returns the option names of a select schema in order.
// The schema may come from a builder or from decoded JSON.
func (s PropertySchema) SelectOptions() []string {
	var options []string
	switch body := s[TypeSelect].(type) {
	case map[string]any:
		switch list := body["options"].(type) {
		case []map[string]any:
			for _, option := range list {
				if name, ok := option["name"].(string); ok {
					options = append(options, name)
				}
			}
		case []any:
			for _, raw := range list {
				if option, ok := raw.(map[string]any); ok {
					if name, ok := option["name"].(string); ok {
						options = append(options, name)
					}
				}
			}
		}
	}
	return options
}

// TitleSchema is the schema of the database's title column.
func TitleSchema() PropertySchema {
	return PropertySchema{TypeTitle: map[string]any{}}
}

// RichTextSchema is a free text column.
func RichTextSchema() PropertySchema {
	return PropertySchema{TypeRichText: map[string]any{}}
}

// URLSchema is a URL column.
func URLSchema() PropertySchema {
	return PropertySchema{TypeURL: map[string]any{}}
}

// DateSchema is a date column.
func DateSchema() PropertySchema {
	return PropertySchema{TypeDate: map[string]any{}}
}

// SelectSchema is a single-select column with the given options in
// order.
func SelectSchema(options ...string) PropertySchema {
	list := make([]map[string]any, len(options))
	for index, option := range options {
		list[index] = map[string]any{"name": option}
	}
	return PropertySchema{TypeSelect: map[string]any{"options": list}}
}

// RelationSchema links rows to pages of another database.
func RelationSchema(databaseID string) PropertySchema {
	return PropertySchema{TypeRelation: map[string]any{"database_id": databaseID}}
}

// PropertyValue is a page property value keyed by type:
// {"select": {"name": "New"}}.
type PropertyValue map[string]any

// TitleValue sets a title column.
func TitleValue(content string) PropertyValue {
	return PropertyValue{TypeTitle: []map[string]any{{"text": map[string]any{"content": content}}}}
}

// RichTextValue sets a rich text column.
func RichTextValue(content string) PropertyValue {
	return PropertyValue{TypeRichText: []map[string]any{{"text": map[string]any{"content": content}}}}
}

// SelectValue picks a select option by name.
func SelectValue(option string) PropertyValue {
	return PropertyValue{TypeSelect: map[string]any{"name": option}}
}

// URLValue sets a URL column.
func URLValue(value string) PropertyValue {
	return PropertyValue{TypeURL: value}
}

// DateValue sets a date column. start is an ISO 8601 date or
// date-time.
func DateValue(start string) PropertyValue {
	return PropertyValue{TypeDate: map[string]any{"start": start}}
}

// RelationValue links a row to the given pages.
func RelationValue(pageIDs ...string) PropertyValue {
	list := make([]map[string]any, len(pageIDs))
	for index, pageID := range pageIDs {
		list[index] = map[string]any{"id": pageID}
	}
	return PropertyValue{TypeRelation: list}
}
