// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// GetRepoPublicKey fetches the key used to encrypt the repository's
// Actions secrets.
func (client *Client) GetRepoPublicKey(ctx context.Context, repo Repository) (*PublicKey, error) {
	var key PublicKey
	if err := client.get(ctx, repo.path()+"/actions/secrets/public-key", &key); err != nil {
		return nil, fmt.Errorf("getting secrets public key for %s: %w", repo, err)
	}
	if key.KeyID == "" || key.Key == "" {
		return nil, fmt.Errorf("getting secrets public key for %s: response is missing key_id or key", repo)
	}
	return &key, nil
}

// CreateOrUpdateRepoSecret uploads a sealed value under name. The
// result is true when GitHub created the secret (201) and false when
// it overwrote an existing one (204).
func (client *Client) CreateOrUpdateRepoSecret(ctx context.Context, repo Repository, name string, value EncryptedSecret) (bool, error) {
	path := repo.path() + "/actions/secrets/" + url.PathEscape(name)
	_, status, err := client.do(ctx, http.MethodPut, path, value)
	if err != nil {
		return false, fmt.Errorf("uploading secret %s to %s: %w", name, repo, err)
	}
	return status == http.StatusCreated, nil
}

// GetRepoSecret returns the metadata of a repository secret. A secret
// that does not exist yields an error satisfying IsNotFound.
func (client *Client) GetRepoSecret(ctx context.Context, repo Repository, name string) (*Secret, error) {
	var secret Secret
	if err := client.get(ctx, repo.path()+"/actions/secrets/"+url.PathEscape(name), &secret); err != nil {
		return nil, fmt.Errorf("getting secret %s in %s: %w", name, repo, err)
	}
	return &secret, nil
}
