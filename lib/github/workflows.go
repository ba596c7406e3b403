// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// DispatchWorkflowRequest is the body of a workflow_dispatch trigger.
type DispatchWorkflowRequest struct {
	// Ref is the branch, tag, or SHA to run on.
	Ref string `json:"ref"`

	// Inputs must match the workflow's declared workflow_dispatch
	// inputs.
	Inputs map[string]string `json:"inputs,omitempty"`
}

// DispatchWorkflow fires workflow_dispatch for workflowID, a file name
// such as "quiet-link-validator.yml" or a numeric id. GitHub answers
// 204 and does not report the run it queued.
func (client *Client) DispatchWorkflow(ctx context.Context, repo Repository, workflowID string, request DispatchWorkflowRequest) error {
	if workflowID == "" || request.Ref == "" {
		return errors.New("github: dispatching a workflow requires a workflow id and a ref")
	}
	path := fmt.Sprintf("%s/actions/workflows/%s/dispatches", repo.path(), url.PathEscape(workflowID))
	if _, _, err := client.do(ctx, http.MethodPost, path, request); err != nil {
		return fmt.Errorf("dispatching %s on %s in %s: %w", workflowID, request.Ref, repo, err)
	}
	return nil
}
