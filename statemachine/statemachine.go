package statemachine

import (
	"errors"
	"fmt"
	"math"
	"time"

	assert "github.com/arl/assertgo"
	"github.com/flurry-dev/flurry/core/container"
	"github.com/flurry-dev/flurry/core/logging/slog"
	"github.com/flurry-dev/flurry/core/option"
)

var ErrNoFirstState = errors.New("statemachine: no first state defined, mark exactly one state with First")
var ErrMultipleFirstStates = errors.New("statemachine: multiple states marked as first")

const neverExpires = time.Duration(math.MaxInt64)

// StateContext 状态函数的调用上下文。
type StateContext struct {
	// Tm 自状态机启动以来经过的时间
	Tm time.Duration
	// StateTm 当前状态已激活的时间，状态衔接时不一定从零开始
	StateTm time.Duration
	// InitialCall 本次激活后的首次调用
	InitialCall bool
}

type StateFunc func(ctx *StateContext)

type StateOption func(*stateData)

// First 标记首个执行的状态，每台状态机必须且只能有一个。
func First() StateOption {
	return func(st *stateData) {
		st.first = true
	}
}

// MustFinish 标记该状态一旦进入，即使本循环未再次 Engage 也继续执行。
func MustFinish() StateOption {
	return func(st *stateData) {
		st.mustFinish = true
	}
}

type stateData struct {
	name        string
	first       bool
	mustFinish  bool
	hasDuration bool
	duration    time.Duration
	nextState   string
	run         StateFunc

	ran       bool
	startTime time.Duration
	expires   time.Duration
}

// Machine 状态机组件。状态以显式注册取代继承，Build 校验后方可执行。
//
// 状态机依赖每个控制循环的 Engage 调用：未被重新 Engage 且当前状态未标记
// MustFinish 时，Execute 会让状态机退出执行。
type Machine struct {
	name  string
	clock IClock

	states container.Map[string, *stateData]
	order  container.List[string]

	first        string
	built        bool
	engaged      bool
	shouldEngage bool
	current      *stateData
	currentName  string
	start        time.Time
}

func New(name string, clock IClock) *Machine {
	if clock == nil {
		clock = NewSystemClock()
	}
	return &Machine{
		name:   name,
		clock:  clock,
		states: container.NewMap[string, *stateData](),
	}
}

// State 注册普通状态，该状态持续执行直到状态函数调用 NextState。
func (ss *Machine) State(name string, fn StateFunc, opts ...StateOption) *Machine {
	return ss.addState(&stateData{name: name, run: fn, expires: neverExpires}, opts)
}

// TimedState 注册限时状态：超过 duration 后转入 nextState，
// nextState 为空则超时即结束。
func (ss *Machine) TimedState(name string, duration time.Duration, nextState string, fn StateFunc, opts ...StateOption) *Machine {
	assert.True(duration > 0)
	return ss.addState(&stateData{
		name:        name,
		run:         fn,
		hasDuration: true,
		duration:    duration,
		nextState:   nextState,
		expires:     neverExpires,
	}, opts)
}

func (ss *Machine) addState(st *stateData, opts []StateOption) *Machine {
	if ss.states.Contains(st.name) {
		panic(fmt.Sprintf("statemachine %v: duplicate state %v", ss.name, st.name))
	}
	for _, opt := range opts {
		opt(st)
	}
	ss.states.Add(st.name, st)
	ss.order.Add(st.name)
	return ss
}

// Build 校验状态表：恰好一个首状态，限时状态的后继必须存在。
func (ss *Machine) Build() error {
	first := ""
	var err error
	ss.order.ScanIf(func(name string) bool {
		st, _ := ss.states.Get(name)
		if st.first {
			if first != "" {
				err = ErrMultipleFirstStates
				return false
			}
			first = name
		}
		if st.nextState != "" && !ss.states.Contains(st.nextState) {
			err = fmt.Errorf("statemachine %v: state %v links to unknown state %v", ss.name, name, st.nextState)
			return false
		}
		return true
	})
	if err != nil {
		return err
	}
	if first == "" {
		return ErrNoFirstState
	}

	ss.first = first
	ss.built = true
	return nil
}

// LoadDurations 从配置覆盖限时状态的时长，键下为状态名到秒数的映射。
func (ss *Machine) LoadDurations(optionKey string) error {
	var durations map[string]float64
	if err := option.GetByKey(optionKey, &durations); err != nil {
		return err
	}
	for name, seconds := range durations {
		if st, ok := ss.states.Get(name); ok && st.hasDuration {
			st.duration = time.Duration(seconds * float64(time.Second))
		}
	}
	return nil
}

func (ss *Machine) Name() string {
	return ss.name
}

// CurrentState 当前状态名，未执行时为空串。
func (ss *Machine) CurrentState() string {
	return ss.currentName
}

func (ss *Machine) IsExecuting() bool {
	return ss.engaged
}

// StateNames 按注册顺序返回状态名。
func (ss *Machine) StateNames() container.List[string] {
	return ss.order.Copy()
}

// Engage 声明本循环希望状态机执行。未在执行时定位到首状态。
// 必须在每次 Execute 前调用，否则状态机自行退出。
func (ss *Machine) Engage() {
	ss.engage("", false)
}

// EngageAt 从指定状态开始执行，仅在未执行时生效。
func (ss *Machine) EngageAt(name string) {
	ss.engage(name, false)
}

// EngageForce 即使正在执行也回到首状态。
func (ss *Machine) EngageForce() {
	ss.engage("", true)
}

func (ss *Machine) engage(initial string, force bool) {
	assert.True(ss.built)

	ss.shouldEngage = true
	if !force && ss.engaged {
		return
	}
	if initial != "" {
		ss.transition(initial)
	} else {
		ss.transition(ss.first)
	}
}

// NextState 转入指定状态，只应从状态函数内调用。
func (ss *Machine) NextState(name string) {
	ss.transition(name)
}

// NextStateNow 转入指定状态并立即执行一次。优先使用 NextState。
func (ss *Machine) NextStateNow(name string) {
	ss.transition(name)
	// 从状态函数内再入 Execute 时本循环的 Engage 已被消费，需重新置位
	ss.shouldEngage = true
	ss.Execute()
}

// Done 结束执行。
func (ss *Machine) Done() {
	ss.current = nil
	ss.currentName = ""
	ss.engaged = false
}

func (ss *Machine) transition(name string) {
	if name == "" {
		ss.current = nil
		ss.currentName = ""
		return
	}

	st, ok := ss.states.Get(name)
	if !ok {
		panic(fmt.Sprintf("statemachine %v: transition to unknown state %v", ss.name, name))
	}
	ss.current = st
	ss.currentName = name
	st.ran = false
}

// Execute 执行一次控制循环。
func (ss *Machine) Execute() {
	assert.True(ss.built)

	now := ss.clock.Now()
	shouldEngage := ss.shouldEngage
	ss.shouldEngage = false

	if !ss.engaged {
		if !shouldEngage {
			return
		}
		ss.engaged = true
		ss.start = now
	}

	tm := now.Sub(ss.start)
	state := ss.current

	if !shouldEngage && (state == nil || !state.mustFinish) {
		slog.Debugf("%.3fs: %v: end of state machine", tm.Seconds(), ss.name)
		ss.Done()
		return
	}

	// 限时状态串联时下一状态从上一个的到期点起算，避免时间漂移
	newStateStart := tm
	if state != nil && state.ran && state.expires < tm {
		ss.transition(state.nextState)
		newStateStart = state.expires
		state = ss.current
	}

	if state == nil {
		slog.Debugf("%.3fs: %v: end of state machine", tm.Seconds(), ss.name)
		ss.Done()
		return
	}

	initialCall := !state.ran
	if initialCall {
		state.ran = true
		state.startTime = newStateStart
		if state.hasDuration {
			state.expires = newStateStart + state.duration
		} else {
			state.expires = neverExpires
		}
		slog.Debugf("%.3fs: %v: entering state %v", tm.Seconds(), ss.name, state.name)
	}

	state.run(&StateContext{
		Tm:          tm,
		StateTm:     tm - state.startTime,
		InitialCall: initialCall,
	})
}
