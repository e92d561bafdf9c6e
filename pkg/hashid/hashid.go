package hashid

import "github.com/spaolacci/murmur3"

// Address hashes a server address string into a stable server id, the
// way every server id referenced by MembershipView and RaftClient is
// derived: server_id = hash(address).
func Address(address string) uint64 {
	return murmur3.Sum64([]byte(address))
}

// Payload hashes an encoded subscription pattern into a stable pattern
// id used as the third component of a subscription registry key.
func Payload(data []byte) uint64 {
	return murmur3.Sum64(data)
}
