package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// The version suffix leaves room for a future algorithm change.
const (
	DomainAutomaton  = "lexaard/automaton/v1"
	DomainDefinition = "lexaard/definition/v1"
	DomainRun        = "lexaard/run/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data), hex encoded.
// The null byte keeps the domain/data boundary unambiguous.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// AutomatonHash identifies an automaton by structure: kind, alphabet,
// start state, and state rows. The label does not contribute.
func AutomatonHash(doc AutomatonDoc) (string, error) {
	canonical, err := MarshalCanonical(doc)
	if err != nil {
		return "", fmt.Errorf("AutomatonHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainAutomaton, canonical), nil
}

// DefinitionHash identifies a registry entry by name and content.
func DefinitionHash(def Definition) (string, error) {
	canonical, err := MarshalCanonical(def)
	if err != nil {
		return "", fmt.Errorf("DefinitionHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainDefinition, canonical), nil
}

// RunID computes the content-addressed ID of one logged evaluation.
// The same session, target, input and seq always give the same ID.
func RunID(session, target, input string, seq int64) (string, error) {
	obj := map[string]any{
		"session": session,
		"target":  target,
		"input":   input,
		"seq":     seq,
	}
	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("RunID: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainRun, canonical), nil
}

// MustRunID is like RunID but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustRunID(session, target, input string, seq int64) string {
	id, err := RunID(session, target, input, seq)
	if err != nil {
		panic(err)
	}
	return id
}
