package container

var _ = Iterator[Pair[int, int]]((*IndexMap[int, int])(nil))

// IndexMap 保持插入顺序的映射。更新已有键不改变其位置。
type IndexMap[T comparable, U any] struct {
	keys List[T]
	base Map[T, U]
}

func NewIndexMap[T comparable, U any](args ...Pair[T, U]) *IndexMap[T, U] {
	result := &IndexMap[T, U]{base: Map[T, U]{}}
	for _, entry := range args {
		result.Add(entry.First, entry.Second)
	}
	return result
}

func (m *IndexMap[T, U]) ScanIf(fn func(entry Pair[T, U]) bool) {
	for _, k := range m.keys {
		if !fn(Pair[T, U]{k, m.base[k]}) {
			break
		}
	}
}

func (m *IndexMap[T, U]) Scan(fn func(entry Pair[T, U])) {
	for _, k := range m.keys {
		fn(Pair[T, U]{k, m.base[k]})
	}
}

func (m *IndexMap[T, U]) ScanKVIf(fn func(key T, value U) bool) {
	for _, k := range m.keys {
		if !fn(k, m.base[k]) {
			break
		}
	}
}

func (m *IndexMap[T, U]) ScanKV(fn func(key T, value U)) {
	for _, k := range m.keys {
		fn(k, m.base[k])
	}
}

func (m *IndexMap[T, U]) Len() int {
	return len(m.keys)
}

func (m *IndexMap[T, U]) IsEmpty() bool {
	return m.Len() == 0
}

func (m *IndexMap[T, U]) Copy() *IndexMap[T, U] {
	newMap := NewIndexMap[T, U]()
	m.ScanKV(func(k T, v U) {
		newMap.Add(k, v)
	})
	return newMap
}

func (m *IndexMap[T, U]) Contains(key T) bool {
	return m.base.Contains(key)
}

func (m *IndexMap[T, U]) Get(key T) (U, bool) {
	v, ok := m.base[key]
	return v, ok
}

func (m *IndexMap[T, U]) Add(key T, value U) {
	if m.base == nil {
		m.base = Map[T, U]{}
	}
	if !m.base.Contains(key) {
		m.keys.Add(key)
	}
	m.base[key] = value
}

func (m *IndexMap[T, U]) AddAll(iter Iterator[Pair[T, U]]) {
	iter.Scan(func(entry Pair[T, U]) {
		m.Add(entry.First, entry.Second)
	})
}

func (m *IndexMap[T, U]) Remove(key T) {
	if !m.base.Contains(key) {
		return
	}
	m.base.Remove(key)
	for i, k := range m.keys {
		if k == key {
			m.keys.RemoveIndex(i)
			break
		}
	}
}

func (m *IndexMap[T, U]) Clear() {
	*m = IndexMap[T, U]{base: Map[T, U]{}}
}

func (m *IndexMap[T, U]) Keys() List[T] {
	return m.keys.Copy()
}

func (m *IndexMap[T, U]) Values() List[U] {
	result := make(List[U], 0, m.Len())
	m.ScanKV(func(k T, v U) { result.Add(v) })
	return result
}
