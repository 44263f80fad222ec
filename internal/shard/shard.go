// Package shard provides partition key generation for extent rows stored in DynamoDB.
package shard

import (
	"fmt"
	"hash/fnv"
	"strconv"
)

// RecordPK computes the sharded partition key for the record at position seq of an extent.
// With numShards=1, all records go to shard "00".
// With numShards>1, records are distributed across shards based on a hash of seq.
func RecordPK(extent string, seq, numShards int) string {
	if numShards <= 1 {
		return PK(extent, 0)
	}
	h := fnv.New32a()
	h.Write([]byte(extent + "#" + strconv.Itoa(seq)))
	return PK(extent, int(h.Sum32()%uint32(numShards)))
}

// PK returns the partition key of shard n of an extent.
func PK(extent string, n int) string {
	return fmt.Sprintf("%s#%02x", extent, n)
}

// All returns the partition keys of every shard of an extent, in shard order.
func All(extent string, numShards int) []string {
	if numShards < 1 {
		numShards = 1
	}
	pks := make([]string, numShards)
	for i := range pks {
		pks[i] = PK(extent, i)
	}
	return pks
}
