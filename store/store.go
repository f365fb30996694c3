// Package store persists value tables between runs.
//
// A PolicyStore holds a single table. Load returns ErrNotFound when nothing was saved
// yet; any other error means the stored table could not be read.
package store

import (
	"context"
	"errors"

	"github.com/zeu5/bankers-rl/policies"
)

var ErrNotFound = errors.New("no stored policy")

type PolicyStore interface {
	Load(ctx context.Context) (*policies.QTable, error)
	Save(ctx context.Context, table *policies.QTable) error
}
