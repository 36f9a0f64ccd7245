package quota

import (
	"encoding/json"

	"go.etcd.io/bbolt"
	"go.uber.org/zap"
)

var Buckets = struct {
	Metadata []byte
	Counts   []byte
	Seen     []byte
}{
	Metadata: []byte("__metadata__"),
	Counts:   []byte("counts"),
	Seen:     []byte("seen"),
}

var MetadataKeys = struct {
	Version []byte
}{
	Version: []byte("version"),
}

var CountKeys = struct {
	Attempts  []byte
	Successes []byte
}{
	Attempts:  []byte("attempts"),
	Successes: []byte("successes"),
}

const currentVersion = 1

// Bolt is a Counter persisted in a bbolt file, so a quota spans multiple
// batch runs over the same archive. Each RecordAttempt is its own write
// transaction, which is what makes the read-modify-write safe across
// workers. It also keeps a bucket of already-archived post IDs.
type Bolt struct {
	db  *bbolt.DB
	log *zap.SugaredLogger
}

func OpenBolt(path string) (*Bolt, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bbolt.Tx) (err error) {
		// Ensure buckets exist
		var metadata *bbolt.Bucket
		if metadata, err = tx.CreateBucketIfNotExists(Buckets.Metadata); err != nil {
			return err
		}
		if _, err = tx.CreateBucketIfNotExists(Buckets.Counts); err != nil {
			return err
		}
		if _, err = tx.CreateBucketIfNotExists(Buckets.Seen); err != nil {
			return err
		}

		// Record the current version of the database
		if versionBytes, err := json.Marshal(currentVersion); err != nil {
			return err
		} else if err = metadata.Put(MetadataKeys.Version, versionBytes); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Bolt{db: db, log: zap.S().Named("quota")}, nil
}

func (b *Bolt) Close() error {
	return b.db.Close()
}

func (b *Bolt) Count() int {
	var successes int
	err := b.db.View(func(tx *bbolt.Tx) error {
		successes = getCount(tx.Bucket(Buckets.Counts), CountKeys.Successes)
		return nil
	})
	if err != nil {
		b.log.Warnf("failed to read success count: %v", err)
		return 0
	}
	return successes
}

// Attempts returns how many attempts have been recorded, successful or not.
func (b *Bolt) Attempts() int {
	var attempts int
	err := b.db.View(func(tx *bbolt.Tx) error {
		attempts = getCount(tx.Bucket(Buckets.Counts), CountKeys.Attempts)
		return nil
	})
	if err != nil {
		b.log.Warnf("failed to read attempt count: %v", err)
		return 0
	}
	return attempts
}

func (b *Bolt) RecordAttempt(succeeded bool) {
	err := b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(Buckets.Counts)
		if err := putCount(bucket, CountKeys.Attempts, getCount(bucket, CountKeys.Attempts)+1); err != nil {
			return err
		}
		if succeeded {
			return putCount(bucket, CountKeys.Successes, getCount(bucket, CountKeys.Successes)+1)
		}
		return nil
	})
	if err != nil {
		b.log.Warnf("failed to record attempt: %v", err)
	}
}

// MarkSeen remembers a post ID as already archived.
func (b *Bolt) MarkSeen(id string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(Buckets.Seen).Put([]byte(id), []byte{})
	})
}

// Seen reports whether a post ID was archived by a previous run.
func (b *Bolt) Seen(id string) bool {
	var seen bool
	err := b.db.View(func(tx *bbolt.Tx) error {
		seen = tx.Bucket(Buckets.Seen).Get([]byte(id)) != nil
		return nil
	})
	if err != nil {
		return false
	}
	return seen
}

func getCount(bucket *bbolt.Bucket, key []byte) int {
	data := bucket.Get(key)
	if data == nil {
		return 0
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return 0
	}
	return n
}

func putCount(bucket *bbolt.Bucket, key []byte, n int) error {
	data, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return bucket.Put(key, data)
}
