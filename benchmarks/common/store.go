package common

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/zeu5/bankers-rl/store"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenStore builds the policy store selected by the flags. The returned closer must be
// closed once the store is no longer used.
func (f *Flags) OpenStore(logger *slog.Logger) (store.PolicyStore, io.Closer, error) {
	switch f.StoreKind {
	case StoreFile, "":
		return store.NewFileStore(f.StorePath), nopCloser{}, nil
	case StoreMemory:
		return store.NewMemoryStore(), nopCloser{}, nil
	case StoreBadger:
		cfg := store.DefaultBadgerConfig(f.StorePath)
		cfg.Logger = logger
		s, err := store.OpenBadgerStore(cfg)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	default:
		return nil, nil, fmt.Errorf("unknown store kind %q", f.StoreKind)
	}
}
