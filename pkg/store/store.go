// Package store persists the reports produced by the planarity service so
// they can be fetched again by id.
package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	perrors "github.com/matzehuels/planarity/pkg/errors"
)

// Report kinds.
const (
	KindCheck      = "check"
	KindEmbed      = "embed"
	KindPlanarize  = "planarize"
	KindExperiment = "experiment"
)

// Report is one stored result.
type Report struct {
	ID        string    `json:"id" bson:"_id"`
	Kind      string    `json:"kind" bson:"kind"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	GraphHash string    `json:"graph_hash" bson:"graph_hash"`
	Algorithm string    `json:"algorithm,omitempty" bson:"algorithm,omitempty"`
	Nodes     int       `json:"nodes" bson:"nodes"`
	Edges     int       `json:"edges" bson:"edges"`
	Planar    bool      `json:"planar" bson:"planar"`
	// Result is the operation's JSON response body.
	Result json.RawMessage `json:"result,omitempty" bson:"result,omitempty"`
}

// Store saves and loads reports.
type Store interface {
	// Save assigns an id and a creation time when they are unset, then
	// stores r.
	Save(ctx context.Context, r *Report) error
	// Get returns the report with id or an ErrCodeNotFound error.
	Get(ctx context.Context, id string) (*Report, error)
	// List returns up to limit reports, newest first.
	List(ctx context.Context, limit int) ([]*Report, error)
	Close(ctx context.Context) error
}

func prepare(r *Report) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
}

func notFound(id string) error {
	return perrors.New(perrors.ErrCodeNotFound, "report %s not found", id)
}
