// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"fmt"
	"strings"
	"time"
)

// PublicKey is a repository's Actions secrets encryption key. Key is
// a base64 X25519 public key; KeyID must accompany every value sealed
// with it.
type PublicKey struct {
	KeyID string `json:"key_id"`
	Key   string `json:"key"`
}

// Secret is the metadata GitHub returns for a repository secret. The
// value itself is never readable.
type Secret struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EncryptedSecret is the request body for creating or updating a
// repository secret.
type EncryptedSecret struct {
	EncryptedValue string `json:"encrypted_value"`
	KeyID          string `json:"key_id"`
}

// Repository identifies a repository as owner and name.
type Repository struct {
	Owner string
	Name  string
}

// ParseRepository parses "owner/name".
func ParseRepository(value string) (Repository, error) {
	owner, name, ok := strings.Cut(strings.TrimSpace(value), "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return Repository{}, fmt.Errorf("invalid repository %q: expected owner/name", value)
	}
	return Repository{Owner: owner, Name: name}, nil
}

func (r Repository) String() string {
	return r.Owner + "/" + r.Name
}

func (r Repository) path() string {
	return "/repos/" + r.Owner + "/" + r.Name
}
