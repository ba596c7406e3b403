// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package workspace

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bureau-foundation/astra/lib/notion"
)

// SmokeResult describes the records a smoke test inserted.
type SmokeResult struct {
	Title          string
	ParentPageID   string
	ChildPageID    string
	ParentDatabase string
	ChildDatabase  string
}

// NewSmokeSuffix returns eight random hex characters.
func NewSmokeSuffix() string {
	return uuid.NewString()[:8]
}

// RunSmokeTest inserts one page into the layout's smoke parent
// database and one row into the child database related to it. Property
// values are derived from each database's schema: the title column
// gets "<prefix>-<suffix>" ("link-" prepended for the child), select
// columns their first option, url columns the smoke URL, date columns
// today's date, and rich text columns the title. The child's smoke
// relation points at the new parent page; other relations stay empty.
//
// ids maps database titles to ids, as returned by Bootstrap.
func RunSmokeTest(ctx context.Context, api API, ids map[string]string, layout *Layout, suffix string, today time.Time) (*SmokeResult, error) {
	smoke := layout.Smoke
	if smoke == nil {
		return nil, fmt.Errorf("layout defines no smoke test")
	}
	parentSpec := layout.Database(smoke.Parent)
	childSpec := layout.Database(smoke.Child)
	if parentSpec == nil || childSpec == nil {
		return nil, fmt.Errorf("smoke databases %q and %q must both be in the layout", smoke.Parent, smoke.Child)
	}
	parentID, childID := ids[smoke.Parent], ids[smoke.Child]
	if parentID == "" || childID == "" {
		return nil, fmt.Errorf("smoke databases %q and %q have not been ensured", smoke.Parent, smoke.Child)
	}

	title := smoke.Prefix + "-" + suffix
	date := today.Format(time.DateOnly)

	parentPage, err := api.CreatePage(ctx, notion.CreatePageRequest{
		Parent:     notion.DatabaseParent(parentID),
		Properties: recordValues(*parentSpec, title, smoke.URL, date),
	})
	if err != nil {
		return nil, fmt.Errorf("inserting %s page: %w", smoke.Parent, err)
	}

	childValues := recordValues(*childSpec, "link-"+title, smoke.URL, date)
	childValues[smoke.Relation] = notion.RelationValue(parentPage.ID)
	childPage, err := api.CreatePage(ctx, notion.CreatePageRequest{
		Parent:     notion.DatabaseParent(childID),
		Properties: childValues,
	})
	if err != nil {
		return nil, fmt.Errorf("inserting %s row: %w", smoke.Child, err)
	}

	return &SmokeResult{
		Title:          title,
		ParentPageID:   parentPage.ID,
		ChildPageID:    childPage.ID,
		ParentDatabase: smoke.Parent,
		ChildDatabase:  smoke.Child,
	}, nil
}

// recordValues builds a value for every column of spec.
func recordValues(spec DatabaseSpec, title, url, date string) map[string]notion.PropertyValue {
	values := make(map[string]notion.PropertyValue, len(spec.Properties)+1)
	for _, property := range spec.Properties {
		switch property.Type {
		case notion.TypeTitle:
			values[property.Name] = notion.TitleValue(title)
		case notion.TypeRichText:
			values[property.Name] = notion.RichTextValue(title)
		case notion.TypeSelect:
			if len(property.Options) > 0 {
				values[property.Name] = notion.SelectValue(property.Options[0])
			}
		case notion.TypeURL:
			values[property.Name] = notion.URLValue(url)
		case notion.TypeDate:
			values[property.Name] = notion.DateValue(date)
		}
	}
	return values
}
