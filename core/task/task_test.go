package task_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/flurry-dev/flurry/core/task"
	"github.com/stretchr/testify/assert"
)

func TestExecute(t *testing.T) {
	var counter int32
	var wg sync.WaitGroup

	for i := 0; i < 64; i++ {
		wg.Add(1)
		task.Execute(func() {
			defer wg.Done()
			atomic.AddInt32(&counter, 1)
		})
	}

	wg.Wait()
	assert.Equal(t, int32(64), atomic.LoadInt32(&counter))
}
