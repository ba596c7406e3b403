// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package workspace

import (
	"context"
	"errors"
	"testing"

	"github.com/bureau-foundation/astra/lib/notion"
)

func TestEnsureDatabase_CreatesWhenAbsent(t *testing.T) {
	api := newFakeAPI()
	spec := DefaultLayout().Databases[0]

	result, err := EnsureDatabase(context.Background(), api, "parent-page", spec)
	if err != nil {
		t.Fatalf("EnsureDatabase: %v", err)
	}
	if !result.Created || result.ID == "" || result.Title != "Chronicle" {
		t.Errorf("result = %+v", result)
	}
	created := api.databaseByTitle("Chronicle")
	if created == nil {
		t.Fatal("database was not created")
	}
	if got := created.Properties["Emotion"].SelectOptions(); len(got) != 4 || got[0] != "Calm" {
		t.Errorf("Emotion options = %v", got)
	}
}

func TestEnsureDatabase_ReusesExactMatch(t *testing.T) {
	api := newFakeAPI()
	api.addDatabase("Chronicle Archive", nil)
	existing := api.addDatabase("Chronicle", nil)

	result, err := EnsureDatabase(context.Background(), api, "parent-page", DatabaseSpec{Title: "Chronicle"})
	if err != nil {
		t.Fatalf("EnsureDatabase: %v", err)
	}
	if result.Created {
		t.Error("expected existing database to be reused")
	}
	if result.ID != existing.ID {
		t.Errorf("ID = %q, want %q (not the prefix match)", result.ID, existing.ID)
	}
	if api.creates != 0 {
		t.Errorf("creates = %d, want 0", api.creates)
	}
}

func TestFindDatabase_FollowsPagination(t *testing.T) {
	api := newFakeAPI()
	api.pageSize = 2
	for _, title := range []string{"RunLog 2024", "RunLog 2025", "RunLog old", "RunLog draft"} {
		api.addDatabase(title, nil)
	}
	want := api.addDatabase("RunLog", nil)

	found, err := FindDatabase(context.Background(), api, "RunLog")
	if err != nil {
		t.Fatalf("FindDatabase: %v", err)
	}
	if found == nil || found.ID != want.ID {
		t.Fatalf("found = %+v, want %s", found, want.ID)
	}
	if api.searches != 3 {
		t.Errorf("searches = %d, want 3", api.searches)
	}
}

func TestFindDatabase_BoundedPages(t *testing.T) {
	api := newFakeAPI()
	api.pageSize = 1
	for i := 0; i < maxSearchPages+5; i++ {
		api.addDatabase("LinkChecks copy", nil)
	}
	api.addDatabase("LinkChecks", nil)

	found, err := FindDatabase(context.Background(), api, "LinkChecks")
	if !errors.Is(err, ErrSearchTruncated) {
		t.Fatalf("FindDatabase error = %v, want ErrSearchTruncated", err)
	}
	if found != nil {
		t.Errorf("expected no match within %d pages, got %s", maxSearchPages, found.ID)
	}
	if api.searches != maxSearchPages {
		t.Errorf("searches = %d, want %d", api.searches, maxSearchPages)
	}
}

func TestEnsureDatabase_TruncatedSearchDoesNotCreate(t *testing.T) {
	api := newFakeAPI()
	api.pageSize = 1
	for i := 0; i < maxSearchPages+5; i++ {
		api.addDatabase("LinkChecks copy", nil)
	}
	api.addDatabase("LinkChecks", nil)

	result, err := EnsureDatabase(context.Background(), api, "parent-page", DatabaseSpec{Title: "LinkChecks"})
	if !errors.Is(err, ErrSearchTruncated) {
		t.Fatalf("EnsureDatabase error = %v, want ErrSearchTruncated", err)
	}
	if result.Created || result.ID != "" {
		t.Errorf("result = %+v, want zero", result)
	}
	if api.creates != 0 {
		t.Errorf("creates = %d, want 0", api.creates)
	}
}

func TestFindDatabase_LastPageWithoutMatch(t *testing.T) {
	api := newFakeAPI()
	api.pageSize = 1
	for i := 0; i < maxSearchPages; i++ {
		api.addDatabase("LinkChecks copy", nil)
	}

	found, err := FindDatabase(context.Background(), api, "LinkChecks")
	if err != nil {
		t.Fatalf("FindDatabase: %v", err)
	}
	if found != nil {
		t.Errorf("found = %s, want nil", found.ID)
	}
}

func TestFindDatabase_SkipsArchived(t *testing.T) {
	api := newFakeAPI()
	archived := api.addDatabase("RunLog", nil)
	archived.Archived = true

	found, err := FindDatabase(context.Background(), api, "RunLog")
	if err != nil {
		t.Fatalf("FindDatabase: %v", err)
	}
	if found != nil {
		t.Errorf("archived database %s was matched", found.ID)
	}
}

func TestEnsureProperty_AddsOnce(t *testing.T) {
	api := newFakeAPI()
	links := api.addDatabase("LinkChecks", map[string]notion.PropertySchema{"Title": notion.TitleSchema()})

	added, err := EnsureProperty(context.Background(), api, links.ID, "Chronicle", notion.RelationSchema("db-chronicle"))
	if err != nil {
		t.Fatalf("first EnsureProperty: %v", err)
	}
	if !added {
		t.Error("expected property to be added on first call")
	}

	added, err = EnsureProperty(context.Background(), api, links.ID, "Chronicle", notion.RelationSchema("db-other"))
	if err != nil {
		t.Fatalf("second EnsureProperty: %v", err)
	}
	if added {
		t.Error("expected property to be left alone on second call")
	}
	if api.updates != 1 {
		t.Errorf("updates = %d, want 1", api.updates)
	}
	relation := links.Properties["Chronicle"][notion.TypeRelation].(map[string]any)
	if relation["database_id"] != "db-chronicle" {
		t.Errorf("relation was overwritten: %v", relation)
	}
}

func TestEnsureProperty_NeverOverwritesDifferentType(t *testing.T) {
	api := newFakeAPI()
	links := api.addDatabase("LinkChecks", map[string]notion.PropertySchema{
		"Chronicle": notion.RichTextSchema(),
	})

	added, err := EnsureProperty(context.Background(), api, links.ID, "Chronicle", notion.RelationSchema("db-chronicle"))
	if err != nil {
		t.Fatalf("EnsureProperty: %v", err)
	}
	if added || api.updates != 0 {
		t.Errorf("added = %v, updates = %d; an existing property must not be replaced", added, api.updates)
	}
}
