package aggregates

// ordered is a keyed collection that iterates in insertion order.
type ordered[K comparable, V any] struct {
	keys  []K
	items map[K]V
}

func newOrdered[K comparable, V any]() *ordered[K, V] {
	return &ordered[K, V]{items: make(map[K]V)}
}

func (o *ordered[K, V]) len() int { return len(o.keys) }

func (o *ordered[K, V]) get(k K) (V, bool) {
	v, ok := o.items[k]
	return v, ok
}

func (o *ordered[K, V]) has(k K) bool {
	_, ok := o.items[k]
	return ok
}

func (o *ordered[K, V]) add(k K, v V) {
	if _, ok := o.items[k]; !ok {
		o.keys = append(o.keys, k)
	}
	o.items[k] = v
}

// set replaces an existing value without moving it.
func (o *ordered[K, V]) set(k K, v V) {
	o.items[k] = v
}

func (o *ordered[K, V]) remove(k K) bool {
	if _, ok := o.items[k]; !ok {
		return false
	}
	delete(o.items, k)
	for i, key := range o.keys {
		if key == k {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
	return true
}

func (o *ordered[K, V]) values() []V {
	out := make([]V, 0, len(o.keys))
	for _, k := range o.keys {
		out = append(out, o.items[k])
	}
	return out
}

func (o *ordered[K, V]) clone(cp func(V) V) *ordered[K, V] {
	c := &ordered[K, V]{
		keys:  make([]K, len(o.keys)),
		items: make(map[K]V, len(o.items)),
	}
	copy(c.keys, o.keys)
	for k, v := range o.items {
		c.items[k] = cp(v)
	}
	return c
}
