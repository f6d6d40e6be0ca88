package kvdb

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/meghashyamc/streetsearch/logger"
	bolt "go.etcd.io/bbolt"
)

type BoltDB struct {
	store  *bolt.DB
	logger logger.Logger
}

const recordsBucket = "records"

func New(logger logger.Logger, kvDBPath string) (*BoltDB, error) {
	if err := os.MkdirAll(filepath.Dir(kvDBPath), 0755); err != nil {
		logger.Error("failed to create key-value database directory", "err", err.Error(), "path", kvDBPath)
		return nil, fmt.Errorf("failed to create key-value database directory: %w", err)
	}

	store, err := bolt.Open(kvDBPath, 0600, &bolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		logger.Error("failed to open database", "err", err.Error(), "path", kvDBPath)
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	boltDB := &BoltDB{
		store:  store,
		logger: logger,
	}

	if err := boltDB.initBucket(); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}

	return boltDB, nil
}

func (b *BoltDB) initBucket() error {
	return b.store.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(recordsBucket))
		if err != nil {
			b.logger.Error("failed to create bucket", "err", err.Error())
			return fmt.Errorf("failed to create bucket: %w", err)
		}
		return nil
	})
}

// SetMany writes all entries in a single transaction. Either every entry is
// stored or none is.
func (b *BoltDB) SetMany(entries []Entry) error {
	for _, entry := range entries {
		if entry.Key == "" {
			b.logger.Error("key cannot be empty", "key", entry.Key)
			return &InvalidKeyError{
				Key:    entry.Key,
				Reason: "key cannot be empty",
			}
		}
	}

	return b.store.Update(func(tx *bolt.Tx) error {
		bucket, err := b.bucket(tx)
		if err != nil {
			return err
		}

		for _, entry := range entries {
			if err := bucket.Put([]byte(entry.Key), []byte(entry.Value)); err != nil {
				b.logger.Error("failed to set key", "key", entry.Key, "err", err.Error())
				return fmt.Errorf("failed to set key %s: %w", entry.Key, err)
			}
		}

		return nil
	})
}

func (b *BoltDB) Get(key string) (string, error) {
	if key == "" {
		b.logger.Error("key cannot be empty", "key", key)
		return "", &InvalidKeyError{
			Key:    key,
			Reason: "key cannot be empty",
		}
	}

	var value []byte
	err := b.store.View(func(tx *bolt.Tx) error {
		bucket, err := b.bucket(tx)
		if err != nil {
			return err
		}

		v := bucket.Get([]byte(key))
		if v == nil {
			return &NotFoundError{Key: key}
		}

		value = make([]byte, len(v))
		copy(value, v)
		return nil
	})

	if err != nil {
		return "", err
	}

	return string(value), nil
}

// Update runs fn on the current value of key and stores the result, all within
// one read-write transaction.
func (b *BoltDB) Update(key string, fn UpdateFunc) error {
	if key == "" {
		b.logger.Error("key cannot be empty", "key", key)
		return &InvalidKeyError{
			Key:    key,
			Reason: "key cannot be empty",
		}
	}

	return b.store.Update(func(tx *bolt.Tx) error {
		bucket, err := b.bucket(tx)
		if err != nil {
			return err
		}

		current := bucket.Get([]byte(key))
		if current == nil {
			return &NotFoundError{Key: key}
		}

		updated, err := fn(string(current))
		if err != nil {
			return err
		}

		if err := bucket.Put([]byte(key), []byte(updated)); err != nil {
			b.logger.Error("failed to update key", "key", key, "err", err.Error())
			return fmt.Errorf("failed to update key %s: %w", key, err)
		}

		return nil
	})
}

func (b *BoltDB) Count() (int, error) {
	count := 0
	err := b.store.View(func(tx *bolt.Tx) error {
		bucket, err := b.bucket(tx)
		if err != nil {
			return err
		}
		count = bucket.Stats().KeyN
		return nil
	})

	return count, err
}

func (b *BoltDB) Close() error {
	if b.store != nil {
		return b.store.Close()
	}
	return nil
}

func (b *BoltDB) bucket(tx *bolt.Tx) (*bolt.Bucket, error) {
	bucket := tx.Bucket([]byte(recordsBucket))
	if bucket == nil {
		b.logger.Error("bucket not found", "bucket", recordsBucket)
		return nil, fmt.Errorf("bucket not found")
	}
	return bucket, nil
}
