package inject

import (
	"github.com/flurry-dev/flurry/core/container"
)

// Pool 可注入值的池，由调用方构建并填入，注入子系统只读。
// 同名依赖可通过 "{组件名}_{槽位名}" 的键为单个组件单独提供值。
type Pool struct {
	base container.OrderedMap[string, any]
}

func NewPool(args ...container.Pair[string, any]) *Pool {
	pool := &Pool{}
	for _, entry := range args {
		pool.Add(entry.First, entry.Second)
	}
	return pool
}

func (ss *Pool) Add(name string, value any) {
	ss.base.Add(name, value)
}

func (ss *Pool) Get(name string) (any, bool) {
	return ss.base.Get(name)
}

func (ss *Pool) Contains(name string) bool {
	return ss.base.Contains(name)
}

func (ss *Pool) Len() int {
	return ss.base.Len()
}

func (ss *Pool) Names() container.List[string] {
	return ss.base.Keys()
}

func (ss *Pool) ScanKV(fn func(name string, value any)) {
	ss.base.ScanKV(fn)
}
