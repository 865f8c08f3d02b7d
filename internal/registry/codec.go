package registry

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"sort"
)

func encodeCounter(n uint32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], n)
	return b[:]
}

func decodeCounter(b []byte) (uint32, error) {
	if len(b) != 4 {
		return 0, fmt.Errorf("%w: counter is %d bytes", ErrCorruptState, len(b))
	}
	return binary.BigEndian.Uint32(b), nil
}

func encodeEvents(m map[uint32]Event) ([]byte, error) {
	return json.Marshal(m)
}

func decodeEvents(b []byte) (map[uint32]Event, error) {
	m := make(map[uint32]Event)
	if len(b) == 0 {
		return m, nil
	}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("%w: events: %v", ErrCorruptState, err)
	}
	return m, nil
}

// sortedEvents returns the map values in ascending EventID order.
func sortedEvents(m map[uint32]Event) []Event {
	ids := make([]uint32, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]Event, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}
