package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/zeu5/bankers-rl/core"
	"github.com/zeu5/bankers-rl/policies"
)

// BadgerConfig configures a BadgerStore.
type BadgerConfig struct {
	// Path is the database directory. Ignored when InMemory is set.
	Path string `json:"path" yaml:"path"`

	// InMemory keeps everything in memory, used in tests.
	InMemory bool `json:"in_memory" yaml:"in_memory"`

	SyncWrites bool `json:"sync_writes" yaml:"sync_writes"`

	// Name separates tables sharing one database.
	Name string `json:"name" yaml:"name"`

	// Logger receives badger's internal log lines. Nil disables them.
	Logger *slog.Logger `json:"-" yaml:"-"`
}

func DefaultBadgerConfig(path string) BadgerConfig {
	return BadgerConfig{
		Path:       path,
		SyncWrites: true,
		Name:       "offline",
	}
}

type badgerMeta struct {
	Actions int       `json:"actions"`
	States  int       `json:"states"`
	SavedAt time.Time `json:"saved_at"`
}

// BadgerStore keeps one row per state under a per-table key prefix.
type BadgerStore struct {
	db     *badger.DB
	prefix string
}

var _ PolicyStore = &BadgerStore{}

// badgerLogger adapts slog.Logger to badger's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func OpenBadgerStore(cfg BadgerConfig) (*BadgerStore, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for persistent database")
	}
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0750); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}
	name := cfg.Name
	if name == "" {
		name = "offline"
	}
	return &BadgerStore{db: db, prefix: "policy/" + name + "/"}, nil
}

func (b *BadgerStore) Close() error {
	return b.db.Close()
}

func (b *BadgerStore) metaKey() []byte {
	return []byte(b.prefix + "meta")
}

func (b *BadgerStore) rowPrefix() []byte {
	return []byte(b.prefix + "state/")
}

func (b *BadgerStore) rowKeys(txn *badger.Txn) [][]byte {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	it := txn.NewIterator(opts)
	defer it.Close()

	prefix := b.rowPrefix()
	keys := make([][]byte, 0)
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		keys = append(keys, it.Item().KeyCopy(nil))
	}
	return keys
}

func (b *BadgerStore) Load(ctx context.Context) (*policies.QTable, error) {
	var table *policies.QTable
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(b.metaKey())
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		var meta badgerMeta
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &meta)
		}); err != nil {
			return fmt.Errorf("decode meta: %w", err)
		}
		table = policies.NewQTable(meta.Actions)

		prefix := b.rowPrefix()
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := it.Item()
			key := string(item.Key()[len(prefix):])
			state, err := core.ParseState(key)
			if err != nil {
				return err
			}
			var row []float64
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &row)
			}); err != nil {
				return fmt.Errorf("decode state %s: %w", key, err)
			}
			if state.Len() != meta.Actions || len(row) != meta.Actions {
				return fmt.Errorf("state %s has %d entries, expected %d", key, len(row), meta.Actions)
			}
			for a, v := range row {
				table.Set(state, core.Action(a), v)
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load table: %w", err)
	}
	return table, nil
}

// Save replaces the stored table. The meta key is written last so an interrupted
// save reads back as missing rather than partial.
func (b *BadgerStore) Save(ctx context.Context, table *policies.QTable) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(b.metaKey()); err != nil {
			return err
		}
		for _, k := range b.rowKeys(txn) {
			if err := txn.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("clear table: %w", err)
	}

	wb := b.db.NewWriteBatch()
	states := table.States()
	for _, s := range states {
		row, _ := table.Values(s)
		val, err := json.Marshal(row)
		if err == nil {
			err = ctx.Err()
		}
		if err == nil {
			err = wb.Set(append(b.rowPrefix(), s.Hash()...), val)
		}
		if err != nil {
			wb.Cancel()
			return fmt.Errorf("write state %s: %w", s, err)
		}
	}
	if err := wb.Flush(); err != nil {
		return fmt.Errorf("flush table: %w", err)
	}

	meta, err := json.Marshal(badgerMeta{Actions: table.Actions(), States: len(states), SavedAt: time.Now()})
	if err != nil {
		return err
	}
	err = b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(b.metaKey(), meta)
	})
	if err != nil {
		return fmt.Errorf("write meta: %w", err)
	}
	return nil
}
