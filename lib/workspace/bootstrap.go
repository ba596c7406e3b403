// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package workspace

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/astra/lib/notion"
)

// StepError identifies which bootstrap step failed.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string { return e.Step + ": " + e.Err.Error() }

func (e *StepError) Unwrap() error { return e.Err }

// Bootstrap ensures every database of the layout, in order, under
// parentPageID. Each relation is ensured right after the later of its
// two databases. Returns the database ids keyed by title.
//
// The first failing step aborts the run with a *StepError.
func Bootstrap(ctx context.Context, api API, parentPageID string, layout *Layout, logger *slog.Logger) (map[string]string, error) {
	ids := make(map[string]string, len(layout.Databases))
	done := make([]bool, len(layout.Relations))

	for _, spec := range layout.Databases {
		result, err := EnsureDatabase(ctx, api, parentPageID, spec)
		if err != nil {
			return ids, &StepError{Step: fmt.Sprintf("ensure database %s", spec.Title), Err: err}
		}
		ids[spec.Title] = result.ID
		if result.Created {
			logger.Info("created database", "title", spec.Title, "id", result.ID)
		} else {
			logger.Info("found existing database", "title", spec.Title, "id", result.ID)
		}

		for index, relation := range layout.Relations {
			if done[index] {
				continue
			}
			databaseID, haveDatabase := ids[relation.Database]
			targetID, haveTarget := ids[relation.Target]
			if !haveDatabase || !haveTarget {
				continue
			}
			done[index] = true

			step := fmt.Sprintf("ensure relation %s.%s", relation.Database, relation.Property)
			added, err := EnsureProperty(ctx, api, databaseID, relation.Property, notion.RelationSchema(targetID))
			if err != nil {
				return ids, &StepError{Step: step, Err: err}
			}
			if added {
				logger.Info("relation added",
					"database", relation.Database,
					"property", relation.Property,
					"target", relation.Target,
				)
			} else {
				logger.Info("relation exists", "database", relation.Database, "property", relation.Property)
			}
		}
	}

	return ids, nil
}
