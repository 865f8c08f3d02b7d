package changelog

import "encoding/binary"

// Keyspace (byte-wise, lexicographically sortable):
//   - ns/{ns}/changes/m             (last assigned seq, 8 bytes BE)
//   - ns/{ns}/changes/e/{seq_be8}   (entries)

var (
	nsPrefix   = []byte("ns/")
	changesSeg = []byte("/changes")
	metaSuffix = []byte("/m")
	entrySeg   = []byte("/e/")
)

func appendBE8(dst []byte, v uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return append(dst, b[:]...)
}

func changesPrefix(namespace string) []byte {
	k := make([]byte, 0, len(nsPrefix)+len(namespace)+len(changesSeg)+16)
	k = append(k, nsPrefix...)
	k = append(k, namespace...)
	k = append(k, changesSeg...)
	return k
}

// KeyMeta builds the key holding the last assigned sequence.
func KeyMeta(namespace string) []byte {
	return append(changesPrefix(namespace), metaSuffix...)
}

// KeyEntriesPrefix is the common prefix of every entry key in a namespace.
func KeyEntriesPrefix(namespace string) []byte {
	return append(changesPrefix(namespace), entrySeg...)
}

// KeyEntry builds the entry key with a big-endian sequence for ordering.
func KeyEntry(namespace string, seq uint64) []byte {
	return appendBE8(KeyEntriesPrefix(namespace), seq)
}
