// Copyright 2026 The Rain Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"fmt"
	"log/slog"

	"github.com/rainlanguage/rain.metadata/lib/codec"
	"github.com/rainlanguage/rain.metadata/lib/meta"
	"github.com/rainlanguage/rain.metadata/lib/subgraph"
)

// Snapshot is a serializable image of a store's caches. It carries no
// resolver or logger; those are re-injected on restore.
type Snapshot struct {
	Subgraphs       []string                   `cbor:"subgraphs"`
	Cache           map[meta.Hash][]byte       `cbor:"cache"`
	DotrainCache    map[string]meta.Hash       `cbor:"dotrain_cache"`
	DeployerCache   map[meta.Hash]NPE2Deployer `cbor:"deployer_cache"`
	DeployerHashMap map[meta.Hash]meta.Hash    `cbor:"deployer_hash_map"`
}

// Snapshot captures the store's current contents.
func (s *Store) Snapshot() *Snapshot {
	snapshot := &Snapshot{
		Subgraphs:       s.Subgraphs(),
		Cache:           make(map[meta.Hash][]byte, len(s.cache)),
		DotrainCache:    make(map[string]meta.Hash, len(s.dotrainCache)),
		DeployerCache:   make(map[meta.Hash]NPE2Deployer, len(s.deployerCache)),
		DeployerHashMap: make(map[meta.Hash]meta.Hash, len(s.deployerHashMap)),
	}
	for hash, data := range s.cache {
		snapshot.Cache[hash] = data
	}
	for uri, hash := range s.dotrainCache {
		snapshot.DotrainCache[uri] = hash
	}
	for hash, deployer := range s.deployerCache {
		snapshot.DeployerCache[hash] = *deployer
	}
	for alias, target := range s.deployerHashMap {
		snapshot.DeployerHashMap[alias] = target
	}
	return snapshot
}

// Encode serializes the snapshot to CBOR.
func (snapshot *Snapshot) Encode() ([]byte, error) {
	return codec.Marshal(snapshot)
}

// DecodeSnapshot deserializes a CBOR snapshot.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var snapshot Snapshot
	if err := codec.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("store: decoding snapshot: %w", err)
	}
	return &snapshot, nil
}

// FromSnapshot restores a store from a snapshot. Snapshot content is
// untrusted: every cache entry is revalidated against its hash and
// mismatching entries are dropped, as are dotrain aliases pointing at
// dropped entries and deployer records that fail the completeness
// check.
func FromSnapshot(snapshot *Snapshot, resolver subgraph.Resolver, logger *slog.Logger) *Store {
	s := NewEmpty(resolver, logger)
	s.AddSubgraphs(snapshot.Subgraphs...)
	for hash, data := range snapshot.Cache {
		if _, ok := s.UpdateWith(hash, data); !ok {
			s.logger.Debug("dropped snapshot entry with mismatched hash", "hash", hash)
		}
	}
	for uri, hash := range snapshot.DotrainCache {
		if _, ok := s.cache[hash]; ok {
			s.dotrainCache[uri] = hash
		}
	}
	for hash, deployer := range snapshot.DeployerCache {
		if deployer.IsCorrupt() {
			s.logger.Debug("dropped corrupt snapshot deployer", "hash", hash)
			continue
		}
		s.deployerCache[hash] = &deployer
	}
	for alias, target := range snapshot.DeployerHashMap {
		if _, ok := s.deployerCache[target]; ok {
			s.deployerHashMap[alias] = target
		}
	}
	return s
}
