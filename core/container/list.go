package container

var _ = Iterator[struct{}]((List[struct{}])(nil))

type List[T any] []T

func NewList[T any](args ...T) List[T] {
	result := make(List[T], len(args))
	copy(result, args)
	return result
}

func (list List[T]) ScanIf(fn func(elem T) bool) {
	for _, v := range list {
		if !fn(v) {
			break
		}
	}
}

func (list List[T]) Scan(fn func(elem T)) {
	for _, v := range list {
		fn(v)
	}
}

func (list List[T]) ScanIV(fn func(index int, elem T)) {
	for i, v := range list {
		fn(i, v)
	}
}

func (list List[T]) Len() int {
	return len(list)
}

func (list List[T]) IsEmpty() bool {
	return list.Len() == 0
}

func (list List[T]) Copy() List[T] {
	newList := make(List[T], list.Len())
	copy(newList, list)
	return newList
}

func (list *List[T]) Add(elem T) {
	*list = append(*list, elem)
}

func (list *List[T]) AddAll(iter Iterator[T]) {
	iter.Scan(func(elem T) {
		list.Add(elem)
	})
}

func (list *List[T]) RemoveIndex(index int) {
	*list = append((*list)[:index], (*list)[index+1:]...)
}

func (list *List[T]) Clear() {
	*list = (*list)[:0]
}
