// Package util carries small helpers used by the CLI.
package util

import (
	"math/big"

	"github.com/google/uuid"
)

// uidRoot prefixes generated UIDs with the 2.25 UUID-derived arc
const uidRoot = "2.25."

func uidFrom(u uuid.UUID) string {
	n := new(big.Int).SetBytes(u[:])
	return uidRoot + n.String()
}

// NewUID generates a DICOM UID from a random UUID under the 2.25 arc
func NewUID() string {
	return uidFrom(uuid.New())
}

// HashUID derives a stable UID from arbitrary input, useful for
// reproducible synthetic instances
func HashUID(value string) string {
	return uidFrom(uuid.NewSHA1(uuid.NameSpaceOID, []byte(value)))
}
