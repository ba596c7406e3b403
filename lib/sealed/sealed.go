// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sealed

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/nacl/box"

	"github.com/bureau-foundation/astra/lib/secret"
)

// KeySize is the length in bytes of an X25519 key.
const KeySize = 32

// PublicKey is a decoded X25519 recipient key.
type PublicKey struct {
	key [KeySize]byte
}

// ParsePublicKey decodes a base64 X25519 public key. The decoded key
// must be exactly [KeySize] bytes.
func ParsePublicKey(encoded string) (*PublicKey, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, fmt.Errorf("decoding public key: %w", err)
	}
	if len(raw) != KeySize {
		return nil, fmt.Errorf("public key is %d bytes, expected %d", len(raw), KeySize)
	}
	publicKey := &PublicKey{}
	copy(publicKey.key[:], raw)
	return publicKey, nil
}

// String returns the base64 encoding of the key.
func (p *PublicKey) String() string {
	return base64.StdEncoding.EncodeToString(p.key[:])
}

// Seal encrypts plaintext to the key and returns base64 ciphertext.
// Every call uses a fresh ephemeral key, so sealing the same value
// twice yields different output.
func (p *PublicKey) Seal(plaintext []byte) (string, error) {
	ciphertext, err := box.SealAnonymous(nil, plaintext, &p.key, rand.Reader)
	if err != nil {
		return "", fmt.Errorf("sealing value: %w", err)
	}
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Seal parses publicKey and encrypts plaintext to it.
func Seal(publicKey string, plaintext []byte) (string, error) {
	parsed, err := ParsePublicKey(publicKey)
	if err != nil {
		return "", err
	}
	return parsed.Seal(plaintext)
}

// Keypair holds an X25519 keypair. The private key is kept in a
// secret.Buffer. The caller must call Close when done.
type Keypair struct {
	PrivateKey *secret.Buffer
	PublicKey  *PublicKey
}

// Close releases the private key memory. Idempotent.
func (k *Keypair) Close() error {
	if k.PrivateKey != nil {
		return k.PrivateKey.Close()
	}
	return nil
}

// GenerateKeypair creates a new X25519 keypair.
func GenerateKeypair() (*Keypair, error) {
	publicKey, privateKey, err := box.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generating keypair: %w", err)
	}
	protected, err := secret.NewFromBytes(privateKey[:])
	if err != nil {
		return nil, fmt.Errorf("protecting private key: %w", err)
	}
	return &Keypair{
		PrivateKey: protected,
		PublicKey:  &PublicKey{key: *publicKey},
	}, nil
}

// Open decrypts base64 sealed-box ciphertext addressed to keypair. The
// plaintext is returned in a secret.Buffer the caller must close.
func Open(keypair *Keypair, ciphertext string) (*secret.Buffer, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return nil, fmt.Errorf("decoding ciphertext: %w", err)
	}

	var privateKey [KeySize]byte
	copy(privateKey[:], keypair.PrivateKey.Bytes())
	defer secret.Zero(privateKey[:])

	plaintext, ok := box.OpenAnonymous(nil, raw, &keypair.PublicKey.key, &privateKey)
	if !ok {
		return nil, fmt.Errorf("opening sealed box: authentication failed")
	}
	if len(plaintext) == 0 {
		return nil, fmt.Errorf("opening sealed box: empty plaintext")
	}
	return secret.NewFromBytes(plaintext)
}
