package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	// RunID identifies a single pipeline execution.
	RunID ID
	// MapKey identifies a brain map by its catalog name (e.g. "myelin").
	MapKey string
)

func (id RunID) String() string { return ID(id).String() }

// NewRunID creates a fresh run identifier.
func NewRunID() RunID { return RunID(NewID()) }

func (k MapKey) String() string { return string(k) }

// ParseMapKey parses a string into a MapKey.
func ParseMapKey(s string) (MapKey, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("map key cannot be empty")
	}
	return MapKey(s), nil
}
