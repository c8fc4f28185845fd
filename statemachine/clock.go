package statemachine

import (
	"sync"
	"time"
)

type IClock interface {
	Now() time.Time
}

var _ IClock = (*systemClock)(nil)

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func NewSystemClock() IClock {
	return systemClock{}
}

var _ IClock = (*ManualClock)(nil)

// ManualClock 测试用时钟，只能手工推进。
type ManualClock struct {
	lock sync.Mutex
	now  time.Time
}

func NewManualClock() *ManualClock {
	return &ManualClock{}
}

func (ss *ManualClock) Now() time.Time {
	ss.lock.Lock()
	defer ss.lock.Unlock()

	return ss.now
}

func (ss *ManualClock) Advance(d time.Duration) {
	ss.lock.Lock()
	defer ss.lock.Unlock()

	ss.now = ss.now.Add(d)
}
