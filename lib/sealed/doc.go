// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sealed encrypts values to a repository's public key using
// the NaCl sealed-box construction (X25519 + XSalsa20-Poly1305 with an
// ephemeral sender key), which is the format GitHub requires for
// Actions secrets.
//
// Keys and ciphertext travel as standard base64. Callers pass the
// repository key string to [ParsePublicKey] once per run and then call
// [PublicKey.Seal] for each value. [GenerateKeypair] and [Open] exist
// for the other side of the exchange; private keys live in
// [secret.Buffer] memory.
//
// Depends on lib/secret for secure memory allocation.
package sealed
