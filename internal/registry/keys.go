package registry

// Keyspace:
//   - ns/{ns}/registry/event_counter  (uint32 BE, events ever created)
//   - ns/{ns}/registry/events         (JSON object event_id -> Event)

var (
	nsPrefix   = []byte("ns/")
	regSeg     = []byte("/registry/")
	counterKey = []byte("event_counter")
	eventsKey  = []byte("events")
)

func registryKey(namespace string, name []byte) []byte {
	k := make([]byte, 0, len(nsPrefix)+len(namespace)+len(regSeg)+len(name))
	k = append(k, nsPrefix...)
	k = append(k, namespace...)
	k = append(k, regSeg...)
	k = append(k, name...)
	return k
}

// KeyCounter builds the key holding the namespace's event counter.
func KeyCounter(namespace string) []byte { return registryKey(namespace, counterKey) }

// KeyEvents builds the key holding the namespace's event map.
func KeyEvents(namespace string) []byte { return registryKey(namespace, eventsKey) }
