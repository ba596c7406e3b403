// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package workspace

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/astra/lib/notion"
)

//go:embed astra.jsonc
var defaultLayoutSource []byte

// Smoke defaults applied when the layout leaves them empty.
const (
	DefaultSmokePrefix = "astra-init-test"
	DefaultSmokeURL    = "https://example.invalid/"
)

// Layout describes the databases to ensure and the smoke test to run
// against them.
type Layout struct {
	Databases []DatabaseSpec `json:"databases"`
	Relations []RelationSpec `json:"relations,omitempty"`
	Smoke     *SmokeSpec     `json:"smoke,omitempty"`
}

// DatabaseSpec is a database title and its schema at creation time.
type DatabaseSpec struct {
	Title      string         `json:"title"`
	Properties []PropertySpec `json:"properties"`
}

// PropertySpec is one column. Options apply to select columns only,
// and the first option is the one smoke records use.
type PropertySpec struct {
	Name    string   `json:"name"`
	Type    string   `json:"type"`
	Options []string `json:"options,omitempty"`
}

// RelationSpec adds Property to Database, relating its rows to pages
// of Target.
type RelationSpec struct {
	Database string `json:"database"`
	Property string `json:"property"`
	Target   string `json:"target"`
}

// SmokeSpec names the parent database, the child database, and the
// child's relation property linking the two records.
type SmokeSpec struct {
	Parent   string `json:"parent"`
	Child    string `json:"child"`
	Relation string `json:"relation"`
	Prefix   string `json:"prefix,omitempty"`
	URL      string `json:"url,omitempty"`
}

// Schema converts the declaration into a Notion property schema.
func (p PropertySpec) Schema() notion.PropertySchema {
	switch p.Type {
	case notion.TypeTitle:
		return notion.TitleSchema()
	case notion.TypeRichText:
		return notion.RichTextSchema()
	case notion.TypeSelect:
		return notion.SelectSchema(p.Options...)
	case notion.TypeURL:
		return notion.URLSchema()
	case notion.TypeDate:
		return notion.DateSchema()
	}
	return notion.PropertySchema{p.Type: map[string]any{}}
}

// Schema returns the creation-time property map of the database.
func (d DatabaseSpec) Schema() map[string]notion.PropertySchema {
	properties := make(map[string]notion.PropertySchema, len(d.Properties))
	for _, property := range d.Properties {
		properties[property.Name] = property.Schema()
	}
	return properties
}

// Database returns the declared database with the given title, or nil.
func (l *Layout) Database(title string) *DatabaseSpec {
	for index := range l.Databases {
		if l.Databases[index].Title == title {
			return &l.Databases[index]
		}
	}
	return nil
}

var columnTypes = map[string]bool{
	notion.TypeTitle:    true,
	notion.TypeRichText: true,
	notion.TypeSelect:   true,
	notion.TypeURL:      true,
	notion.TypeDate:     true,
}

// Validate checks the layout for structural issues and returns
// human-readable descriptions. An empty list means the layout is
// usable.
func (l *Layout) Validate() []string {
	var issues []string

	if len(l.Databases) == 0 {
		issues = append(issues, "layout has no databases (at least one is required)")
	}

	titles := make(map[string]int, len(l.Databases))
	for index, database := range l.Databases {
		prefix := fmt.Sprintf("databases[%d]", index)
		if database.Title == "" {
			issues = append(issues, prefix+": title is required")
		} else if first, exists := titles[database.Title]; exists {
			issues = append(issues, fmt.Sprintf("%s %q: duplicate title (first used at databases[%d])", prefix, database.Title, first))
		} else {
			titles[database.Title] = index
		}
		issues = append(issues, validateProperties(database, prefix)...)
	}

	relationNames := make(map[string]bool)
	for index, relation := range l.Relations {
		prefix := fmt.Sprintf("relations[%d]", index)
		source := l.Database(relation.Database)
		if source == nil {
			issues = append(issues, fmt.Sprintf("%s: database %q is not in the layout", prefix, relation.Database))
		}
		if l.Database(relation.Target) == nil {
			issues = append(issues, fmt.Sprintf("%s: target %q is not in the layout", prefix, relation.Target))
		}
		if relation.Property == "" {
			issues = append(issues, prefix+": property is required")
			continue
		}
		key := relation.Database + "." + relation.Property
		if relationNames[key] {
			issues = append(issues, fmt.Sprintf("%s: duplicate relation %s", prefix, key))
		}
		relationNames[key] = true
		if source != nil {
			for _, property := range source.Properties {
				if property.Name == relation.Property {
					issues = append(issues, fmt.Sprintf("%s: %s is already declared as a %s property", prefix, key, property.Type))
				}
			}
		}
	}

	if l.Smoke != nil {
		smoke := l.Smoke
		if l.Database(smoke.Parent) == nil {
			issues = append(issues, fmt.Sprintf("smoke: parent %q is not in the layout", smoke.Parent))
		}
		if l.Database(smoke.Child) == nil {
			issues = append(issues, fmt.Sprintf("smoke: child %q is not in the layout", smoke.Child))
		}
		if relation := l.relation(smoke.Child, smoke.Relation); relation == nil {
			issues = append(issues, fmt.Sprintf("smoke: %s.%s is not a declared relation", smoke.Child, smoke.Relation))
		} else if relation.Target != smoke.Parent {
			issues = append(issues, fmt.Sprintf("smoke: %s.%s relates to %q, not the parent %q", smoke.Child, smoke.Relation, relation.Target, smoke.Parent))
		}
	}

	return issues
}

func validateProperties(database DatabaseSpec, prefix string) []string {
	var issues []string
	names := make(map[string]bool, len(database.Properties))
	titleColumns := 0
	for index, property := range database.Properties {
		propertyPrefix := fmt.Sprintf("%s.properties[%d]", prefix, index)
		if property.Name == "" {
			issues = append(issues, propertyPrefix+": name is required")
		} else if names[property.Name] {
			issues = append(issues, fmt.Sprintf("%s %q: duplicate property name", propertyPrefix, property.Name))
		}
		names[property.Name] = true

		if !columnTypes[property.Type] {
			issues = append(issues, fmt.Sprintf("%s %q: unsupported type %q", propertyPrefix, property.Name, property.Type))
		}
		if property.Type == notion.TypeTitle {
			titleColumns++
		}
		if property.Type == notion.TypeSelect && len(property.Options) == 0 {
			issues = append(issues, fmt.Sprintf("%s %q: select property needs at least one option", propertyPrefix, property.Name))
		}
		if property.Type != notion.TypeSelect && len(property.Options) > 0 {
			issues = append(issues, fmt.Sprintf("%s %q: options are only valid on select properties", propertyPrefix, property.Name))
		}
	}
	if titleColumns != 1 {
		issues = append(issues, fmt.Sprintf("%s %q: exactly one title property is required (found %d)", prefix, database.Title, titleColumns))
	}
	return issues
}

func (l *Layout) relation(database, property string) *RelationSpec {
	for index := range l.Relations {
		if l.Relations[index].Database == database && l.Relations[index].Property == property {
			return &l.Relations[index]
		}
	}
	return nil
}

// ParseLayout strips JSONC comments and trailing commas from data,
// decodes it, fills smoke defaults, and validates the result.
func ParseLayout(data []byte) (*Layout, error) {
	decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	decoder.DisallowUnknownFields()

	var layout Layout
	if err := decoder.Decode(&layout); err != nil {
		return nil, fmt.Errorf("parsing layout: %w", err)
	}
	if layout.Smoke != nil {
		if layout.Smoke.Prefix == "" {
			layout.Smoke.Prefix = DefaultSmokePrefix
		}
		if layout.Smoke.URL == "" {
			layout.Smoke.URL = DefaultSmokeURL
		}
	}
	if issues := layout.Validate(); len(issues) > 0 {
		errs := make([]error, len(issues))
		for index, issue := range issues {
			errs[index] = errors.New(issue)
		}
		return nil, fmt.Errorf("invalid layout: %w", errors.Join(errs...))
	}
	return &layout, nil
}

// ReadLayout reads and parses a JSONC layout file.
func ReadLayout(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	layout, err := ParseLayout(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return layout, nil
}

// DefaultLayout returns a fresh copy of the embedded Astra layout.
func DefaultLayout() *Layout {
	layout, err := ParseLayout(defaultLayoutSource)
	if err != nil {
		panic(fmt.Sprintf("embedded layout is invalid: %v", err))
	}
	return layout
}
