package addrbook

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.etcd.io/bbolt"
)

const bucketPrefix = "contacts/"

// BoltDirectory is the production Directory, backed by a bbolt file.
// Each network id gets its own bucket; keys are checksum addresses and
// values are JSON encoded ContactEntry records. Every write runs in its own
// bbolt transaction, so an upsert is atomic.
type BoltDirectory struct {
	db *bbolt.DB
}

// OpenBoltDirectory opens (creating if needed) the contact database at
// path. The parent directory is created too.
//
// References:
//   - https://github.com/etcd-io/bbolt
func OpenBoltDirectory(path string) (*BoltDirectory, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating contact db dir: %w", err)
	}
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening contact db %s: %w", path, err)
	}
	return &BoltDirectory{db: db}, nil
}

func bucketName(networkID string) []byte {
	return []byte(bucketPrefix + networkID)
}

func (b *BoltDirectory) Lookup(networkID string, addr common.Address) (ContactEntry, bool, error) {
	var (
		entry ContactEntry
		found bool
	)
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketName(networkID))
		if bucket == nil {
			return nil
		}
		data := bucket.Get([]byte(addr.Hex()))
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, &entry); err != nil {
			return fmt.Errorf("decoding contact %s: %w", addr.Hex(), err)
		}
		found = true
		return nil
	})
	if err != nil {
		return ContactEntry{}, false, err
	}
	return entry, found, nil
}

func (b *BoltDirectory) Upsert(networkID string, entry ContactEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(bucketName(networkID))
		if err != nil {
			return err
		}
		return bucket.Put([]byte(entry.Address.Hex()), data)
	})
}

func (b *BoltDirectory) Remove(networkID string, addr common.Address) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketName(networkID))
		if bucket == nil {
			return nil
		}
		return bucket.Delete([]byte(addr.Hex()))
	})
}

func (b *BoltDirectory) List(networkID string) ([]ContactEntry, error) {
	result := []ContactEntry{}
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketName(networkID))
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(k, v []byte) error {
			entry := ContactEntry{}
			if err := json.Unmarshal(v, &entry); err != nil {
				return fmt.Errorf("decoding contact %s: %w", string(k), err)
			}
			result = append(result, entry)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sortEntries(result)
	return result, nil
}

func (b *BoltDirectory) Close() error {
	return b.db.Close()
}
