package value

// orderedMap is an insertion-ordered string-keyed map, used by KindObject
// values. Duplicate Set calls overwrite in place without disturbing the
// key's original position, so iteration order always matches insertion
// order.
type orderedMap struct {
	keys   []string
	values map[string]*Value
}

func newOrderedMap() *orderedMap {
	return &orderedMap{values: make(map[string]*Value)}
}

func (m *orderedMap) Get(key string) (*Value, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *orderedMap) Set(key string, v *Value) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

func (m *orderedMap) Delete(key string) {
	if _, exists := m.values[key]; !exists {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

func (m *orderedMap) Len() int { return len(m.keys) }

func (m *orderedMap) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}
