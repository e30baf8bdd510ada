// Copyright 2026 The Rain Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/rainlanguage/rain.metadata/lib/meta"
	"github.com/rainlanguage/rain.metadata/lib/subgraph"
)

// Store is an in-memory content-addressed metadata cache. The zero
// value is not usable; construct with New or NewEmpty.
type Store struct {
	subgraphs       []string
	cache           map[meta.Hash][]byte
	dotrainCache    map[string]meta.Hash
	deployerCache   map[meta.Hash]*NPE2Deployer
	deployerHashMap map[meta.Hash]meta.Hash

	resolver subgraph.Resolver
	logger   *slog.Logger
}

// New creates a store pre-registered with the bootstrap subgraph
// endpoints. The resolver handles all network lookups; nil is allowed
// and makes the network-backed methods report misses. A nil logger
// falls back to slog.Default().
func New(resolver subgraph.Resolver, logger *slog.Logger) *Store {
	s := NewEmpty(resolver, logger)
	s.subgraphs = subgraph.BootstrapEndpoints()
	return s
}

// NewEmpty creates a store with no endpoints and empty caches.
func NewEmpty(resolver subgraph.Resolver, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		cache:           make(map[meta.Hash][]byte),
		dotrainCache:    make(map[string]meta.Hash),
		deployerCache:   make(map[meta.Hash]*NPE2Deployer),
		deployerHashMap: make(map[meta.Hash]meta.Hash),
		resolver:        resolver,
		logger:          logger,
	}
}

// Subgraphs returns the registered endpoint URLs in registration
// order.
func (s *Store) Subgraphs() []string {
	return slices.Clone(s.subgraphs)
}

// AddSubgraphs registers endpoint URLs, skipping any already present.
func (s *Store) AddSubgraphs(urls ...string) {
	for _, url := range urls {
		if !slices.Contains(s.subgraphs, url) {
			s.subgraphs = append(s.subgraphs, url)
		}
	}
}

// GetMeta returns the cached bytes for a content hash.
func (s *Store) GetMeta(hash meta.Hash) ([]byte, bool) {
	data, ok := s.cache[hash]
	return data, ok
}

// Update resolves a hash over the registered endpoints and caches the
// result. Returns the bytes and true on success; false when every
// endpoint failed or the resolver is absent. Resolver failures are
// collapsed into a miss; the cause is logged at debug level.
func (s *Store) Update(ctx context.Context, hash meta.Hash) ([]byte, bool) {
	if s.resolver == nil {
		return nil, false
	}
	response, err := s.resolver.SearchMeta(ctx, hash, s.subgraphs)
	if err != nil {
		s.logger.Debug("meta resolution failed", "hash", hash, "error", err)
		return nil, false
	}
	s.storeContent(response.Bytes)
	s.cache[hash] = response.Bytes
	return response.Bytes, true
}

// UpdateCheck returns the cached bytes when present, otherwise falls
// through to Update.
func (s *Store) UpdateCheck(ctx context.Context, hash meta.Hash) ([]byte, bool) {
	if data, ok := s.cache[hash]; ok {
		return data, true
	}
	return s.Update(ctx, hash)
}

// UpdateWith caches caller-supplied bytes under hash, but only when
// keccak256(bytes) matches. A mismatch leaves the store unchanged and
// returns a miss rather than an error: this is an integrity gate
// against cache poisoning, and the caller's bytes are untrusted input.
func (s *Store) UpdateWith(hash meta.Hash, data []byte) ([]byte, bool) {
	if meta.Keccak256(data) != hash {
		s.logger.Debug("rejected bytes with mismatched hash", "hash", hash)
		return nil, false
	}
	s.storeContent(data)
	s.cache[hash] = data
	return data, true
}

// storeContent indexes the inner items of a document sequence. When
// data carries the document prefix, every inner item becomes
// addressable under its own item hash; items that were only ever
// fetched as part of a bundle can then be looked up individually.
// Anything that is not a well-formed sequence is left alone.
func (s *Store) storeContent(data []byte) {
	prefix := meta.MagicRainMetaDocumentV1.PrefixBytes()
	if len(data) < len(prefix) || string(data[:len(prefix)]) != string(prefix[:]) {
		return
	}
	items, err := meta.DecodeSequence(data)
	if err != nil {
		return
	}
	for i := range items {
		encoded, err := items[i].Encode()
		if err != nil {
			continue
		}
		s.cache[meta.Keccak256(encoded)] = encoded
	}
}

// SetDotrain caches dotrain text under a URI. Returns the new item
// hash and, when the URI previously mapped to different content, the
// evicted hash (zero otherwise). Re-setting identical text is
// idempotent. When the content changes, the old hash's bytes are
// dropped from the cache unless keepOld is set.
func (s *Store) SetDotrain(text string, uri string, keepOld bool) (meta.Hash, meta.Hash, error) {
	item := meta.DocumentItem{
		Payload:     []byte(text),
		Magic:       meta.MagicDotrainV1,
		ContentType: meta.ContentTypeOctetStream,
	}
	encoded, err := item.Encode()
	if err != nil {
		return meta.Hash{}, meta.Hash{}, fmt.Errorf("store: encoding dotrain: %w", err)
	}
	newHash := meta.Keccak256(encoded)

	var oldHash meta.Hash
	if prior, ok := s.dotrainCache[uri]; ok && prior != newHash {
		oldHash = prior
		if !keepOld {
			delete(s.cache, prior)
		}
	}
	s.dotrainCache[uri] = newHash
	s.cache[newHash] = encoded
	return newHash, oldHash, nil
}

// DeleteDotrain removes a URI's alias. Unless keepMeta is set, the
// aliased content is evicted from the cache too. Unknown URIs are a
// no-op.
func (s *Store) DeleteDotrain(uri string, keepMeta bool) {
	hash, ok := s.dotrainCache[uri]
	if !ok {
		return
	}
	delete(s.dotrainCache, uri)
	if !keepMeta {
		delete(s.cache, hash)
	}
}

// DotrainHash returns the item hash a URI maps to.
func (s *Store) DotrainHash(uri string) (meta.Hash, bool) {
	hash, ok := s.dotrainCache[uri]
	return hash, ok
}

// DotrainMeta returns the cached document bytes a URI maps to. A URI
// whose hash was evicted from the cache reports a miss.
func (s *Store) DotrainMeta(uri string) ([]byte, bool) {
	hash, ok := s.dotrainCache[uri]
	if !ok {
		return nil, false
	}
	data, ok := s.cache[hash]
	return data, ok
}

// DotrainURIs returns all cached dotrain URIs.
func (s *Store) DotrainURIs() []string {
	uris := make([]string, 0, len(s.dotrainCache))
	for uri := range s.dotrainCache {
		uris = append(uris, uri)
	}
	slices.Sort(uris)
	return uris
}

// GetDeployer looks a deployer up by its bytecode meta hash, falling
// back to the tx-hash alias index. A dangling alias, one whose target
// has been evicted, reports a miss rather than an error.
func (s *Store) GetDeployer(hash meta.Hash) (*NPE2Deployer, bool) {
	if deployer, ok := s.deployerCache[hash]; ok {
		return deployer, true
	}
	if target, ok := s.deployerHashMap[hash]; ok {
		deployer, ok := s.deployerCache[target]
		return deployer, ok
	}
	return nil, false
}

// SetDeployer caches a deployer record under its bytecode meta hash
// and optionally registers a tx-hash alias for it. The deployer's
// meta document is cached and content-indexed as well.
func (s *Store) SetDeployer(bytecodeMetaHash meta.Hash, deployer *NPE2Deployer, txHash *meta.Hash) {
	s.deployerCache[bytecodeMetaHash] = deployer
	s.storeContent(deployer.MetaBytes)
	s.cache[deployer.MetaHash] = deployer.MetaBytes
	if txHash != nil {
		s.deployerHashMap[*txHash] = bytecodeMetaHash
	}
}

// SetDeployerFromResponse builds and caches a deployer record from a
// resolver response, wiring the tx-hash alias from the response.
func (s *Store) SetDeployerFromResponse(response *subgraph.DeployerResponse) *NPE2Deployer {
	deployer := deployerFromResponse(response)
	txHash := response.TxHash
	s.SetDeployer(response.BytecodeMetaHash, deployer, &txHash)
	return deployer
}

// SearchDeployer resolves a deployer over the registered endpoints and
// caches the result. The given hash may be a bytecode meta hash or a
// deployment tx hash. Failures collapse into a miss.
func (s *Store) SearchDeployer(ctx context.Context, hash meta.Hash) (*NPE2Deployer, bool) {
	if s.resolver == nil {
		return nil, false
	}
	response, err := s.resolver.SearchDeployer(ctx, hash, s.subgraphs)
	if err != nil {
		s.logger.Debug("deployer resolution failed", "hash", hash, "error", err)
		return nil, false
	}
	return s.SetDeployerFromResponse(response), true
}

// SearchDeployerCheck short-circuits to the cache, via either the
// direct key or the tx-hash alias, before going to the network.
func (s *Store) SearchDeployerCheck(ctx context.Context, hash meta.Hash) (*NPE2Deployer, bool) {
	if deployer, ok := s.GetDeployer(hash); ok {
		return deployer, true
	}
	return s.SearchDeployer(ctx, hash)
}

// Merge folds another store's contents into this one. Endpoints union
// with duplicates dropped. For the content, dotrain, and deployer
// caches, existing entries win and only absent keys are adopted. The
// tx-hash alias index is the exception: incoming aliases overwrite
// unconditionally, so merging an authoritative store into a
// provisional one adopts the authoritative aliasing. Callers depend
// on this asymmetry.
func (s *Store) Merge(other *Store) {
	s.AddSubgraphs(other.subgraphs...)
	for hash, data := range other.cache {
		if _, ok := s.cache[hash]; !ok {
			s.cache[hash] = data
		}
	}
	for uri, hash := range other.dotrainCache {
		if _, ok := s.dotrainCache[uri]; !ok {
			s.dotrainCache[uri] = hash
		}
	}
	for hash, deployer := range other.deployerCache {
		if _, ok := s.deployerCache[hash]; !ok {
			s.deployerCache[hash] = deployer
		}
	}
	for alias, target := range other.deployerHashMap {
		s.deployerHashMap[alias] = target
	}
}
