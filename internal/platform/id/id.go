// Package id generates opaque identifiers for correlation: tool invocation
// IDs and per-test key prefixes.
//
// An identifier is the 16 bytes of a random UUID encoded as lowercase,
// unpadded base32, 26 characters long.
package id

import (
	"encoding/base32"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Length is the length of an identifier without prefix.
const Length = 26

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// NewID returns a new random identifier.
func NewID() (string, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	return strings.ToLower(encoding.EncodeToString(u[:])), nil
}

// New returns a random identifier tagged with prefix, as "<prefix>_<id>".
// An empty prefix yields a bare identifier.
func New(prefix string) (string, error) {
	raw, err := NewID()
	if err != nil {
		return "", err
	}
	if prefix == "" {
		return raw, nil
	}
	return prefix + "_" + raw, nil
}

// Valid reports whether s is a bare identifier, or one tagged with prefix.
func Valid(s, prefix string) bool {
	if prefix != "" {
		var ok bool
		if s, ok = strings.CutPrefix(s, prefix+"_"); !ok {
			return false
		}
	}
	if len(s) != Length {
		return false
	}
	_, err := encoding.DecodeString(strings.ToUpper(s))
	return err == nil
}
