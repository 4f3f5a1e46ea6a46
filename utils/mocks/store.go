// SPDX-License-Identifier: BUSL-1.1
//
// Copyright (C) 2025, NASD Inc. All rights reserved.
// Use of this software is governed by the Business Source License included
// in the LICENSE file of this repository and at www.mariadb.com/bsl11.
//
// ANY USE OF THE LICENSED WORK IN VIOLATION OF THIS LICENSE WILL AUTOMATICALLY
// TERMINATE YOUR RIGHTS UNDER THIS LICENSE FOR THE CURRENT AND ALL OTHER
// VERSIONS OF THE LICENSED WORK.
//
// THIS LICENSE DOES NOT GRANT YOU ANY RIGHT IN ANY TRADEMARK OR LOGO OF
// LICENSOR OR ITS AFFILIATES (PROVIDED THAT YOU MAY USE A TRADEMARK OR LOGO OF
// LICENSOR AS EXPRESSLY REQUIRED BY THIS LICENSE).
//
// TO THE EXTENT PERMITTED BY APPLICABLE LAW, THE LICENSED WORK IS PROVIDED ON
// AN "AS IS" BASIS. LICENSOR HEREBY DISCLAIMS ALL WARRANTIES AND CONDITIONS,
// EXPRESS OR IMPLIED, INCLUDING (WITHOUT LIMITATION) WARRANTIES OF
// MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE, NON-INFRINGEMENT, AND
// TITLE.

package mocks

import (
	"context"

	"cosmossdk.io/core/store"
	"github.com/tidwall/btree"
)

var _ store.KVStoreService = &StoreService{}

// StoreService is an in-memory KVStoreService backed by an ordered map. It
// supports checkpointing so tests can imitate the host environment's
// all-or-nothing application of a failed operation.
type StoreService struct {
	tree       *btree.Map[string, []byte]
	checkpoint *btree.Map[string, []byte]
}

func NewStoreService() *StoreService {
	return &StoreService{tree: new(btree.Map[string, []byte])}
}

func (s *StoreService) OpenKVStore(_ context.Context) store.KVStore {
	return &kvStore{tree: s.tree}
}

// Checkpoint snapshots the current state. A later Revert restores it.
func (s *StoreService) Checkpoint() {
	s.checkpoint = s.tree.Copy()
}

// Revert discards every write since the last Checkpoint.
func (s *StoreService) Revert() {
	if s.checkpoint == nil {
		panic("revert without checkpoint")
	}
	*s.tree = *s.checkpoint.Copy()
}

type kvStore struct {
	tree *btree.Map[string, []byte]
}

func (s *kvStore) Get(key []byte) ([]byte, error) {
	value, ok := s.tree.Get(string(key))
	if !ok {
		return nil, nil
	}
	return value, nil
}

func (s *kvStore) Has(key []byte) (bool, error) {
	_, ok := s.tree.Get(string(key))
	return ok, nil
}

func (s *kvStore) Set(key, value []byte) error {
	s.tree.Set(string(key), value)
	return nil
}

func (s *kvStore) Delete(key []byte) error {
	s.tree.Delete(string(key))
	return nil
}

func (s *kvStore) Iterator(start, end []byte) (store.Iterator, error) {
	return s.collect(start, end, false), nil
}

func (s *kvStore) ReverseIterator(start, end []byte) (store.Iterator, error) {
	return s.collect(start, end, true), nil
}

// collect materializes the [start, end) range, which keeps the iterator
// stable across writes made while it is open.
func (s *kvStore) collect(start, end []byte, reverse bool) *kvIterator {
	it := &kvIterator{start: start, end: end}

	s.tree.Scan(func(key string, value []byte) bool {
		if start != nil && key < string(start) {
			return true
		}
		if end != nil && key >= string(end) {
			return false
		}
		it.keys = append(it.keys, []byte(key))
		it.values = append(it.values, value)
		return true
	})

	if reverse {
		for i, j := 0, len(it.keys)-1; i < j; i, j = i+1, j-1 {
			it.keys[i], it.keys[j] = it.keys[j], it.keys[i]
			it.values[i], it.values[j] = it.values[j], it.values[i]
		}
	}

	return it
}

type kvIterator struct {
	start, end []byte
	keys       [][]byte
	values     [][]byte
	index      int
}

func (it *kvIterator) Domain() ([]byte, []byte) { return it.start, it.end }
func (it *kvIterator) Valid() bool              { return it.index < len(it.keys) }
func (it *kvIterator) Next()                    { it.index++ }
func (it *kvIterator) Key() []byte              { return it.keys[it.index] }
func (it *kvIterator) Value() []byte            { return it.values[it.index] }
func (it *kvIterator) Error() error             { return nil }
func (it *kvIterator) Close() error             { return nil }
