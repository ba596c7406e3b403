// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package workspace

import (
	"context"
	"errors"
	"fmt"

	"github.com/bureau-foundation/astra/lib/notion"
)

// maxSearchPages bounds how many result pages a title lookup reads.
const maxSearchPages = 10

// ErrSearchTruncated reports that a title lookup hit maxSearchPages
// while the search still had more results. The database may exist
// beyond the pages read, so callers must not create it.
var ErrSearchTruncated = errors.New("search results truncated")

// API is the subset of the Notion client used for bootstrapping.
type API interface {
	Search(ctx context.Context, request notion.SearchRequest) (*notion.SearchResponse, error)
	CreateDatabase(ctx context.Context, request notion.CreateDatabaseRequest) (*notion.Database, error)
	GetDatabase(ctx context.Context, databaseID string) (*notion.Database, error)
	UpdateDatabase(ctx context.Context, databaseID string, request notion.UpdateDatabaseRequest) (*notion.Database, error)
	CreatePage(ctx context.Context, request notion.CreatePageRequest) (*notion.Page, error)
}

// Result reports the outcome of EnsureDatabase.
type Result struct {
	ID      string
	Title   string
	Created bool
}

// FindDatabase searches for a database whose plain-text title equals
// title exactly. Archived databases are ignored. Returns nil when the
// search is exhausted without a match, and an error wrapping
// ErrSearchTruncated when more than maxSearchPages pages would be needed.
func FindDatabase(ctx context.Context, api API, title string) (*notion.Database, error) {
	request := notion.SearchRequest{Query: title, Filter: notion.DatabaseFilter()}
	for i := 0; i < maxSearchPages; i++ {
		response, err := api.Search(ctx, request)
		if err != nil {
			return nil, err
		}
		for index := range response.Results {
			candidate := &response.Results[index]
			if candidate.Archived {
				continue
			}
			if candidate.PlainTitle() == title {
				return candidate, nil
			}
		}
		if !response.HasMore || response.NextCursor == "" {
			return nil, nil
		}
		request.StartCursor = response.NextCursor
	}
	return nil, fmt.Errorf("%w: no exact match for %q in %d pages; refusing to create a possible duplicate",
		ErrSearchTruncated, title, maxSearchPages)
}

// EnsureDatabase returns the id of the database titled spec.Title,
// creating it under parentPageID with the declared schema when no such
// database exists. An existing database is reused as-is; its schema is
// not compared or changed.
func EnsureDatabase(ctx context.Context, api API, parentPageID string, spec DatabaseSpec) (Result, error) {
	existing, err := FindDatabase(ctx, api, spec.Title)
	if err != nil {
		return Result{}, fmt.Errorf("looking up database %q: %w", spec.Title, err)
	}
	if existing != nil {
		return Result{ID: existing.ID, Title: spec.Title}, nil
	}

	created, err := api.CreateDatabase(ctx, notion.CreateDatabaseRequest{
		Parent:     notion.PageParent(parentPageID),
		Title:      notion.Text(spec.Title),
		Properties: spec.Schema(),
	})
	if err != nil {
		return Result{}, err
	}
	if created.ID == "" {
		return Result{}, fmt.Errorf("creating database %q: response has no id", spec.Title)
	}
	return Result{ID: created.ID, Title: spec.Title, Created: true}, nil
}

// EnsureProperty adds name to the database's schema unless a property
// with that name already exists. An existing property is never
// modified, whatever its type. Reports whether the property was added.
func EnsureProperty(ctx context.Context, api API, databaseID, name string, schema notion.PropertySchema) (bool, error) {
	database, err := api.GetDatabase(ctx, databaseID)
	if err != nil {
		return false, err
	}
	if _, exists := database.Properties[name]; exists {
		return false, nil
	}

	_, err = api.UpdateDatabase(ctx, databaseID, notion.UpdateDatabaseRequest{
		Properties: map[string]notion.PropertySchema{name: schema},
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
