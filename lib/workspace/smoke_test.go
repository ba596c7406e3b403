// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package workspace

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/bureau-foundation/astra/lib/notion"
)

func TestRunSmokeTest(t *testing.T) {
	api := newFakeAPI()
	layout := DefaultLayout()
	ids, err := Bootstrap(context.Background(), api, "parent-page", layout, discardLogger())
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}

	today := time.Date(2026, 3, 1, 23, 30, 0, 0, time.UTC)
	result, err := RunSmokeTest(context.Background(), api, ids, layout, "0a1b2c3d", today)
	if err != nil {
		t.Fatalf("RunSmokeTest: %v", err)
	}
	if result.Title != "astra-init-test-0a1b2c3d" {
		t.Errorf("Title = %q", result.Title)
	}
	if len(api.pages) != 2 {
		t.Fatalf("pages inserted = %d, want 2", len(api.pages))
	}

	parent, child := api.pages[0], api.pages[1]
	if parent.Parent.DatabaseID != ids["Chronicle"] || child.Parent.DatabaseID != ids["LinkChecks"] {
		t.Errorf("parents = %q, %q", parent.Parent.DatabaseID, child.Parent.DatabaseID)
	}

	wantParent := map[string]string{
		"Title":             `{"title":[{"text":{"content":"astra-init-test-0a1b2c3d"}}]}`,
		"Emotion":           `{"select":{"name":"Calm"}}`,
		"Intent":            `{"select":{"name":"Observe"}}`,
		"Status (Enriched)": `{"select":{"name":"New"}}`,
	}
	assertValues(t, "parent", parent.Properties, wantParent)

	wantChild := map[string]string{
		"Title":              `{"title":[{"text":{"content":"link-astra-init-test-0a1b2c3d"}}]}`,
		"URL":                `{"url":"https://example.invalid/"}`,
		"Status (Ingestion)": `{"select":{"name":"New"}}`,
		"Chronicle":          `{"relation":[{"id":"` + result.ParentPageID + `"}]}`,
	}
	assertValues(t, "child", child.Properties, wantChild)
}

func TestRunSmokeTest_DateColumn(t *testing.T) {
	api := newFakeAPI()
	layout, err := ParseLayout([]byte(`{
		"databases": [
			{"title": "RunLog", "properties": [{"name": "Title", "type": "title"}, {"name": "RunDate", "type": "date"}]},
			{"title": "Steps", "properties": [{"name": "Title", "type": "title"}]},
		],
		"relations": [{"database": "Steps", "property": "Run", "target": "RunLog"}],
		"smoke": {"parent": "RunLog", "child": "Steps", "relation": "Run"},
	}`))
	if err != nil {
		t.Fatalf("ParseLayout: %v", err)
	}
	ids, err := Bootstrap(context.Background(), api, "parent-page", layout, discardLogger())
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}

	if _, err := RunSmokeTest(context.Background(), api, ids, layout, "ffffffff", time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("RunSmokeTest: %v", err)
	}
	encoded, _ := json.Marshal(api.pages[0].Properties["RunDate"])
	if string(encoded) != `{"date":{"start":"2026-10-19"}}` {
		t.Errorf("RunDate = %s", encoded)
	}
}

func TestRunSmokeTest_NotIdempotent(t *testing.T) {
	api := newFakeAPI()
	layout := DefaultLayout()
	ids, err := Bootstrap(context.Background(), api, "parent-page", layout, discardLogger())
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := RunSmokeTest(context.Background(), api, ids, layout, NewSmokeSuffix(), time.Now()); err != nil {
			t.Fatalf("RunSmokeTest: %v", err)
		}
	}
	if len(api.pages) != 4 {
		t.Errorf("pages = %d, want 4 after two smoke runs", len(api.pages))
	}
}

func TestRunSmokeTest_ParentFailureStopsChild(t *testing.T) {
	api := newFakeAPI()
	layout := DefaultLayout()
	ids, err := Bootstrap(context.Background(), api, "parent-page", layout, discardLogger())
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	api.failOn = "page " + ids["Chronicle"]

	if _, err := RunSmokeTest(context.Background(), api, ids, layout, "deadbeef", time.Now()); err == nil {
		t.Fatal("expected error")
	}
	if len(api.pages) != 0 {
		t.Errorf("pages = %d, want 0", len(api.pages))
	}
}

func TestNewSmokeSuffix(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9a-f]{8}$`)
	first, second := NewSmokeSuffix(), NewSmokeSuffix()
	if !pattern.MatchString(first) {
		t.Errorf("suffix %q is not 8 hex characters", first)
	}
	if first == second {
		t.Errorf("two suffixes collided: %q", first)
	}
}

func assertValues(t *testing.T, label string, values map[string]notion.PropertyValue, want map[string]string) {
	t.Helper()
	if len(values) != len(want) {
		t.Errorf("%s: %d properties, want %d", label, len(values), len(want))
	}
	for name, wantJSON := range want {
		encoded, err := json.Marshal(values[name])
		if err != nil {
			t.Fatal(err)
		}
		if string(encoded) != wantJSON {
			t.Errorf("%s %s = %s, want %s", label, name, encoded, wantJSON)
		}
	}
}
