/*
Copyright 2025 The Windrow Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package shuffle spreads keyed records over a fixed number of partitions so
// that all records of one key always land in the same partition. That is the
// property a grouped reduce relies on, a group must hold every record of its
// key.
package shuffle

import (
	"github.com/spaolacci/murmur3"

	"github.com/windrowlabs/windrow/pkg/stream"
)

// Shuffle partitions records by the murmur3 hash of their key.
type Shuffle[V any] struct {
	partitionCount uint64
}

// NewShuffle returns a Shuffle over the given number of partitions.
func NewShuffle[V any](partitionCount int) *Shuffle[V] {
	return &Shuffle[V]{
		partitionCount: uint64(partitionCount),
	}
}

// PartitionFor returns the partition index the key hashes to. The mapping is
// stable across processes, it depends only on the key bytes and the partition
// count.
func (s *Shuffle[V]) PartitionFor(key string) int {
	return int(murmur3.Sum64([]byte(key)) % s.partitionCount)
}

// ShuffleRecords maps each record to its partition and returns the partition
// index to records mapping.
func (s *Shuffle[V]) ShuffleRecords(records []stream.Record[string, V]) map[int][]stream.Record[string, V] {
	partitions := make(map[int][]stream.Record[string, V])
	for _, r := range records {
		p := s.PartitionFor(r.Key)
		partitions[p] = append(partitions[p], r)
	}
	return partitions
}
