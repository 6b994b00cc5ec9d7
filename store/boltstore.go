// Package store persists per-asset royalty state in bbolt.
package store

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"github.com/royaltyorg/libroyalty-go/royalty"
)

var bucketAssets = []byte("assets")

// BoltStateStore implements royalty.StateStore on a bbolt database.
// Records are gob-encoded royalty.AssetState values keyed by asset ID.
type BoltStateStore struct {
	db *bbolt.DB
}

// Compile-time interface check.
var _ royalty.StateStore = (*BoltStateStore)(nil)

// OpenBoltStateStore opens or creates the bbolt database at dbPath.
// The parent directory is created if it does not exist.
func OpenBoltStateStore(dbPath string) (*BoltStateStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("store: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("store: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketAssets)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: create bucket: %w", err)
	}

	return &BoltStateStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BoltStateStore) Close() error { return s.db.Close() }

// encodeState serializes a state record using gob encoding.
func encodeState(state *royalty.AssetState) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(state); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeState deserializes gob-encoded data into a state record.
func decodeState(data []byte) (*royalty.AssetState, error) {
	var state royalty.AssetState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&state); err != nil {
		return nil, err
	}
	return &state, nil
}

// Put stores the state for an asset, overwriting any previous record.
func (s *BoltStateStore) Put(id royalty.AssetID, state *royalty.AssetState) error {
	if state == nil {
		return royalty.ErrNilParam
	}

	data, err := encodeState(state)
	if err != nil {
		return fmt.Errorf("store: encode state: %w", err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketAssets).Put(id[:], data)
	})
}

// Get retrieves the state for an asset.
func (s *BoltStateStore) Get(id royalty.AssetID) (*royalty.AssetState, error) {
	var state *royalty.AssetState
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketAssets).Get(id[:])
		if data == nil {
			return royalty.ErrAssetNotFound
		}
		var err error
		state, err = decodeState(data)
		if err != nil {
			return fmt.Errorf("store: decode state: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

// Delete removes the state for an asset.
func (s *BoltStateStore) Delete(id royalty.AssetID) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketAssets)
		if b.Get(id[:]) == nil {
			return royalty.ErrAssetNotFound
		}
		return b.Delete(id[:])
	})
}

// List returns the IDs of all assets with royalty state.
func (s *BoltStateStore) List() ([]royalty.AssetID, error) {
	var ids []royalty.AssetID
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketAssets).ForEach(func(k, _ []byte) error {
			id, err := uuid.FromBytes(k)
			if err != nil {
				return fmt.Errorf("store: invalid asset key: %w", err)
			}
			ids = append(ids, id)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}
