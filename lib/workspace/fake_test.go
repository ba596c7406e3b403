// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package workspace

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/bureau-foundation/astra/lib/notion"
)

// fakeAPI is an in-memory Notion workspace. Search returns every
// database whose title contains the query, pageSize at a time.
type fakeAPI struct {
	databases []*notion.Database
	pages     []notion.CreatePageRequest
	pageIDs   []string

	pageSize int
	nextID   int

	searches, creates, gets, updates int
	calls                            []string

	failOn string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{pageSize: 100}
}

func (f *fakeAPI) newID(kind string) string {
	f.nextID++
	return kind + "-" + strconv.Itoa(f.nextID)
}

func (f *fakeAPI) fail(call string) error {
	f.calls = append(f.calls, call)
	if f.failOn == call {
		return &notion.APIError{StatusCode: 400, Code: "validation_error", Message: "injected failure"}
	}
	return nil
}

func (f *fakeAPI) addDatabase(title string, properties map[string]notion.PropertySchema) *notion.Database {
	database := &notion.Database{
		ID:         f.newID("db"),
		Title:      []notion.RichText{{PlainText: title}},
		Properties: properties,
	}
	f.databases = append(f.databases, database)
	return database
}

func (f *fakeAPI) Search(_ context.Context, request notion.SearchRequest) (*notion.SearchResponse, error) {
	f.searches++
	if err := f.fail("search " + request.Query); err != nil {
		return nil, err
	}
	var matches []notion.Database
	for _, database := range f.databases {
		if containsFold(database.PlainTitle(), request.Query) {
			matches = append(matches, *database)
		}
	}
	start := 0
	if request.StartCursor != "" {
		start, _ = strconv.Atoi(request.StartCursor)
	}
	end := min(start+f.pageSize, len(matches))
	response := &notion.SearchResponse{Results: matches[start:end]}
	if end < len(matches) {
		response.HasMore = true
		response.NextCursor = strconv.Itoa(end)
	}
	return response, nil
}

func (f *fakeAPI) CreateDatabase(_ context.Context, request notion.CreateDatabaseRequest) (*notion.Database, error) {
	f.creates++
	title := notion.PlainText(request.Title)
	if err := f.fail("create " + title); err != nil {
		return nil, err
	}
	if request.Parent.PageID == "" {
		return nil, fmt.Errorf("missing parent page")
	}
	database := f.addDatabase(title, request.Properties)
	return database, nil
}

func (f *fakeAPI) GetDatabase(_ context.Context, databaseID string) (*notion.Database, error) {
	f.gets++
	if err := f.fail("get " + databaseID); err != nil {
		return nil, err
	}
	for _, database := range f.databases {
		if database.ID == databaseID {
			copied := *database
			return &copied, nil
		}
	}
	return nil, &notion.APIError{StatusCode: 404, Code: "object_not_found"}
}

func (f *fakeAPI) UpdateDatabase(_ context.Context, databaseID string, request notion.UpdateDatabaseRequest) (*notion.Database, error) {
	f.updates++
	if err := f.fail("update " + databaseID); err != nil {
		return nil, err
	}
	for _, database := range f.databases {
		if database.ID == databaseID {
			if database.Properties == nil {
				database.Properties = map[string]notion.PropertySchema{}
			}
			for name, schema := range request.Properties {
				database.Properties[name] = schema
			}
			return database, nil
		}
	}
	return nil, &notion.APIError{StatusCode: 404, Code: "object_not_found"}
}

func (f *fakeAPI) CreatePage(_ context.Context, request notion.CreatePageRequest) (*notion.Page, error) {
	if err := f.fail("page " + request.Parent.DatabaseID); err != nil {
		return nil, err
	}
	id := f.newID("page")
	f.pages = append(f.pages, request)
	f.pageIDs = append(f.pageIDs, id)
	return &notion.Page{ID: id}, nil
}

func (f *fakeAPI) databaseByTitle(title string) *notion.Database {
	for _, database := range f.databases {
		if database.PlainTitle() == title {
			return database
		}
	}
	return nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
