package cache

// KV is a plain in-memory associative store. It is not safe for concurrent
// use.
type KV[K comparable, V any] struct {
	m map[K]V
}

func NewKV[K comparable, V any]() *KV[K, V] {
	return &KV[K, V]{
		m: make(map[K]V),
	}
}

func (kv *KV[K, V]) Get(key K) (V, bool) {
	v, ok := kv.m[key]
	return v, ok
}

func (kv *KV[K, V]) Set(key K, value V) {
	kv.m[key] = value
}

// Delete removes key and reports whether it was present.
func (kv *KV[K, V]) Delete(key K) bool {
	if _, ok := kv.m[key]; !ok {
		return false
	}

	delete(kv.m, key)

	return true
}

func (kv *KV[K, V]) Clear() {
	kv.m = make(map[K]V)
}

func (kv *KV[K, V]) Len() int {
	return len(kv.m)
}

// Range calls fn for every entry until fn returns false. Order is
// unspecified.
func (kv *KV[K, V]) Range(fn func(key K, value V) bool) {
	for k, v := range kv.m {
		if !fn(k, v) {
			return
		}
	}
}
