// Package hashid provides the deterministic identity hashes the Raft
// smart client uses to turn server addresses and subscription payloads
// into stable uint64 keys.
//
// Both Address and Payload must be deterministic across processes (two
// clients hashing the same address must agree on the same server id
// without coordination), which rules out Go's randomly-seeded built-in
// map hashing and motivates murmur3, a non-cryptographic hash with a fixed
// seed. (pkg/cmap's shard selection, by contrast, uses hash/maphash with a
// random per-map seed, since shard placement never leaves the process.)
package hashid
