package task

import (
	"fmt"

	"github.com/panjf2000/ants/v2"
)

var p *ants.PoolWithFunc

func init() {
	var err error
	p, err = ants.NewPoolWithFunc(100000, func(f any) {
		(f.(func()))()
	}, ants.WithPreAlloc(false))

	if err != nil {
		panic(fmt.Sprintf("init goroutine pool: %v", err))
	}
}

func Execute(f func()) {
	_ = p.Invoke(f)
}
