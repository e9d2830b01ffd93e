package errors

import (
	"strings"

	"github.com/google/uuid"
)

// Limits bounds the size of graphs accepted from untrusted input.
// A zero field means no bound.
type Limits struct {
	MaxNodes int
	MaxEdges int
}

// ValidateGraphSize rejects graphs that exceed l or that have edges but no
// nodes.
func ValidateGraphSize(nodes, edges int, l Limits) error {
	if nodes < 0 || edges < 0 {
		return New(ErrCodeInvalidGraph, "negative size %d/%d", nodes, edges)
	}
	if nodes == 0 && edges > 0 {
		return New(ErrCodeInvalidGraph, "%d edges but no nodes", edges)
	}
	if l.MaxNodes > 0 && nodes > l.MaxNodes {
		return New(ErrCodeInvalidGraph, "too many nodes (%d > %d)", nodes, l.MaxNodes)
	}
	if l.MaxEdges > 0 && edges > l.MaxEdges {
		return New(ErrCodeInvalidGraph, "too many edges (%d > %d)", edges, l.MaxEdges)
	}
	return nil
}

// ValidateAlgorithm accepts the PQ-tree variant names "bl" and "jts",
// case-insensitively. The empty string selects the default.
func ValidateAlgorithm(name string) error {
	switch strings.ToLower(name) {
	case "", "bl", "jts":
		return nil
	}
	return New(ErrCodeInvalidInput, "unknown algorithm %q (want bl or jts)", name)
}

// ValidateReportID checks that id is a canonical UUID.
func ValidateReportID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "report id cannot be empty")
	}
	u, err := uuid.Parse(id)
	if err != nil || u.String() != strings.ToLower(id) {
		return New(ErrCodeInvalidInput, "invalid report id %q", id)
	}
	return nil
}
