package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	badger "github.com/dgraph-io/badger/v4"

	"solohub/internal/logging"
	"solohub/internal/types"
)

// BadgerStore is a persistent DataSource over a Badger key-value store.
// Records are JSON-encoded under "<prefix>/<id>" keys, so one database can
// host several entity families side by side.
type BadgerStore[T record[T]] struct {
	db     *badger.DB
	prefix string
	less   func(a, b T) bool
	now    func() time.Time
}

// OpenBadger opens (or creates) a Badger database at dir with logging routed
// away from badger's default stderr logger.
func OpenBadger(dir string) (*badger.DB, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %s: %w", dir, err)
	}
	logging.Get(logging.CategoryStore).Infow("badger opened", "dir", dir)
	return db, nil
}

// NewBadgerStore binds one entity family to an open database.
func NewBadgerStore[T record[T]](db *badger.DB, prefix string, less func(a, b T) bool) *BadgerStore[T] {
	return &BadgerStore[T]{db: db, prefix: prefix, less: less, now: time.Now}
}

// SetClock overrides the timestamp source. Test hook.
func (b *BadgerStore[T]) SetClock(now func() time.Time) { b.now = now }

func (b *BadgerStore[T]) key(id string) []byte {
	return []byte(b.prefix + "/" + id)
}

func (b *BadgerStore[T]) decode(data []byte) (T, error) {
	var rec T
	if err := json.Unmarshal(data, &rec); err != nil {
		var zero T
		return zero, fmt.Errorf("decode %s record: %w", b.prefix, err)
	}
	return rec, nil
}

// GetAll scans the prefix and returns records in the store's default order.
func (b *BadgerStore[T]) GetAll(ctx context.Context) ([]T, error) {
	var out []T
	err := b.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(b.prefix + "/")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			data, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			rec, err := b.decode(data)
			if err != nil {
				return err
			}
			out = append(out, rec)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s records: %w", b.prefix, err)
	}
	sort.Slice(out, func(i, j int) bool { return b.less(out[i], out[j]) })
	return out, nil
}

// GetByID returns the record or types.ErrNotFound.
func (b *BadgerStore[T]) GetByID(ctx context.Context, id string) (T, error) {
	var rec T
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(b.key(id))
		if err != nil {
			return err
		}
		data, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		rec, err = b.decode(data)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		var zero T
		return zero, fmt.Errorf("%s %q: %w", b.prefix, id, types.ErrNotFound)
	}
	if err != nil {
		var zero T
		return zero, fmt.Errorf("load %s %s: %w", b.prefix, id, err)
	}
	return rec, nil
}

// Create assigns id/timestamps and persists the record.
func (b *BadgerStore[T]) Create(ctx context.Context, rec T) (T, error) {
	now := b.now()
	rec.SetRecordID(NewID(b.prefix))
	rec.StampCreated(now)

	data, err := json.Marshal(rec)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("encode %s record: %w", b.prefix, err)
	}
	err = b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(b.key(rec.RecordID()), data)
	})
	if err != nil {
		var zero T
		return zero, fmt.Errorf("store %s %s: %w", b.prefix, rec.RecordID(), err)
	}

	logging.Get(logging.CategoryStore).Debugw("record created",
		"backend", "badger", "prefix", b.prefix, "id", rec.RecordID())
	return rec, nil
}

// Update applies mutate inside a read-modify-write transaction. Id and
// CreatedAt survive whatever mutate does; UpdatedAt is always bumped.
func (b *BadgerStore[T]) Update(ctx context.Context, id string, mutate func(T)) (T, error) {
	var next T
	err := b.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(b.key(id))
		if err != nil {
			return err
		}
		data, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		cur, err := b.decode(data)
		if err != nil {
			return err
		}

		next = cur.Clone()
		mutate(next)
		next.SetRecordID(id)
		next.SetCreatedTime(cur.CreatedTime())
		next.Touch(b.now())

		encoded, err := json.Marshal(next)
		if err != nil {
			return err
		}
		return txn.Set(b.key(id), encoded)
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		var zero T
		return zero, fmt.Errorf("%s %q: %w", b.prefix, id, types.ErrNotFound)
	}
	if err != nil {
		var zero T
		return zero, fmt.Errorf("update %s %s: %w", b.prefix, id, err)
	}
	return next, nil
}

// Delete removes the record. types.ErrNotFound when the id is unknown.
func (b *BadgerStore[T]) Delete(ctx context.Context, id string) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(b.key(id)); err != nil {
			return err
		}
		return txn.Delete(b.key(id))
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("%s %q: %w", b.prefix, id, types.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("delete %s %s: %w", b.prefix, id, err)
	}
	return nil
}
