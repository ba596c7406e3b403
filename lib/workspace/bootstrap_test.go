// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package workspace

import (
	"context"
	"errors"
	"maps"
	"slices"
	"strings"
	"testing"

	"github.com/bureau-foundation/astra/lib/notion"
)

func TestBootstrap_SecondRunCreatesNothing(t *testing.T) {
	api := newFakeAPI()
	layout := DefaultLayout()

	first, err := Bootstrap(context.Background(), api, "parent-page", layout, discardLogger())
	if err != nil {
		t.Fatalf("first Bootstrap: %v", err)
	}
	if api.creates != 3 || api.updates != 1 {
		t.Fatalf("first run: creates = %d, updates = %d; want 3 and 1", api.creates, api.updates)
	}

	api.creates, api.updates = 0, 0
	second, err := Bootstrap(context.Background(), api, "parent-page", layout, discardLogger())
	if err != nil {
		t.Fatalf("second Bootstrap: %v", err)
	}
	if api.creates != 0 || api.updates != 0 {
		t.Errorf("second run: creates = %d, updates = %d; want none", api.creates, api.updates)
	}
	if !maps.Equal(first, second) {
		t.Errorf("ids changed between runs: %v then %v", first, second)
	}
	if len(api.databases) != 3 {
		t.Errorf("workspace holds %d databases, want 3", len(api.databases))
	}
}

func TestBootstrap_StepOrder(t *testing.T) {
	api := newFakeAPI()
	if _, err := Bootstrap(context.Background(), api, "parent-page", DefaultLayout(), discardLogger()); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}

	var mutations []string
	for _, call := range api.calls {
		if strings.HasPrefix(call, "create ") || strings.HasPrefix(call, "update ") {
			mutations = append(mutations, call)
		}
	}
	linkChecks := api.databaseByTitle("LinkChecks")
	want := []string{"create Chronicle", "create LinkChecks", "update " + linkChecks.ID, "create RunLog"}
	if !slices.Equal(mutations, want) {
		t.Errorf("mutations = %v, want %v", mutations, want)
	}

	chronicle := api.databaseByTitle("Chronicle")
	relation := linkChecks.Properties["Chronicle"][notion.TypeRelation].(map[string]any)
	if relation["database_id"] != chronicle.ID {
		t.Errorf("relation targets %v, want %s", relation["database_id"], chronicle.ID)
	}
}

func TestBootstrap_RepairsMissingRelation(t *testing.T) {
	api := newFakeAPI()
	api.addDatabase("Chronicle", nil)
	api.addDatabase("LinkChecks", map[string]notion.PropertySchema{"Title": notion.TitleSchema()})

	ids, err := Bootstrap(context.Background(), api, "parent-page", DefaultLayout(), discardLogger())
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	if api.creates != 1 {
		t.Errorf("creates = %d, want only RunLog", api.creates)
	}
	if _, ok := api.databaseByTitle("LinkChecks").Properties["Chronicle"]; !ok {
		t.Error("relation was not added to the existing LinkChecks database")
	}
	if len(ids) != 3 {
		t.Errorf("ids = %v", ids)
	}
}

func TestBootstrap_StepFailureNamed(t *testing.T) {
	api := newFakeAPI()
	api.failOn = "create LinkChecks"

	ids, err := Bootstrap(context.Background(), api, "parent-page", DefaultLayout(), discardLogger())
	var stepError *StepError
	if !errors.As(err, &stepError) {
		t.Fatalf("expected StepError, got %v", err)
	}
	if stepError.Step != "ensure database LinkChecks" {
		t.Errorf("Step = %q", stepError.Step)
	}
	if !notion.IsValidationFailed(err) {
		t.Errorf("underlying API error lost: %v", err)
	}
	if _, ok := ids["Chronicle"]; !ok {
		t.Error("ids should include databases ensured before the failure")
	}
	if api.databaseByTitle("RunLog") != nil {
		t.Error("bootstrap continued past the failed step")
	}
}
