package host

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/flurry-dev/flurry/core/container"
	"github.com/flurry-dev/flurry/core/logging"
	"github.com/flurry-dev/flurry/core/logging/handler"
	"github.com/flurry-dev/flurry/core/logging/handler/console"
	"github.com/flurry-dev/flurry/core/logging/slog"
	"github.com/flurry-dev/flurry/core/task"
	"github.com/flurry-dev/flurry/inject"
)

// Host 组件宿主：持有可注入值的池，按注册顺序为每个组件提取注入请求、
// 解析并赋值。组件本身也以其名字进入池，因此组件之间可以按名互相依赖。
type Host struct {
	lock sync.Mutex

	pool       *inject.Pool
	components *container.IndexMap[string, IComponent]
	feedback   *container.IndexMap[string, any]
	setup      bool
}

func New() *Host {
	return &Host{
		pool:       inject.NewPool(),
		components: container.NewIndexMap[string, IComponent](),
		feedback:   container.NewIndexMap[string, any](),
	}
}

// UseConsoleLogging 以控制台 handler 作为全局日志出口。
func UseConsoleLogging(opt *console.Option) {
	repo := logging.NewLogFormatterContainer()
	repo.AddFormatter("Default", logging.DefaultLogFormatter)
	repo.AddFormatter("Color", logging.ColorLogFormatter)

	consoleHandler := console.NewHandler()
	if opt != nil {
		consoleHandler.SetOption(opt, repo)
	}

	compoundHandler := handler.NewCompoundHandler()
	compoundHandler.AddHandler(consoleHandler)
	slog.BindGlobalHandler(compoundHandler)
}

// AddInjectable 向池中登记一个命名值。针对单个组件的值使用
// "{组件名}_{槽位名}" 作为键。
func (ss *Host) AddInjectable(name string, value any) {
	ss.lock.Lock()
	defer ss.lock.Unlock()

	ss.pool.Add(name, value)
}

// Register 注册组件。组件同时以其名字进入池。
func (ss *Host) Register(name string, component IComponent) error {
	ss.lock.Lock()
	defer ss.lock.Unlock()

	if ss.setup {
		return fmt.Errorf("register component %v: host already set up", name)
	}
	if ss.components.Contains(name) {
		return fmt.Errorf("register component %v: duplicate name", name)
	}

	ss.components.Add(name, component)
	ss.pool.Add(name, component)
	return nil
}

// Setup 按注册顺序为每个组件解析并赋值，随后调用其 Setup 钩子。
// 任一组件失败立即终止。
func (ss *Host) Setup() error {
	ss.lock.Lock()
	defer ss.lock.Unlock()

	var err error
	ss.components.ScanKVIf(func(name string, component IComponent) bool {
		var resolved *container.IndexMap[string, any]
		resolved, err = ss.resolveComponent(name, component)
		if err != nil {
			return false
		}
		err = assignComponent(name, component, resolved)
		return err == nil
	})
	if err != nil {
		return err
	}

	ss.setup = true
	return nil
}

// SetupAll 与 Setup 等价，但解析阶段在协程池上并行展开。
// 各组件输入互不相交且池在此期间只读，随后仍按注册顺序赋值。
func (ss *Host) SetupAll() error {
	ss.lock.Lock()
	defer ss.lock.Unlock()

	type result struct {
		resolved *container.IndexMap[string, any]
		err      error
	}

	n := ss.components.Len()
	results := make([]result, n)

	var wg sync.WaitGroup
	var i int
	ss.components.ScanKV(func(name string, component IComponent) {
		index := i
		i++
		wg.Add(1)
		task.Execute(func() {
			defer wg.Done()
			resolved, err := ss.resolveComponent(name, component)
			results[index] = result{resolved: resolved, err: err}
		})
	})
	wg.Wait()

	var err error
	i = 0
	ss.components.ScanKVIf(func(name string, component IComponent) bool {
		r := results[i]
		i++
		if r.err != nil {
			err = r.err
			return false
		}
		err = assignComponent(name, component, r.resolved)
		return err == nil
	})
	if err != nil {
		return err
	}

	ss.setup = true
	return nil
}

func (ss *Host) resolveComponent(name string, component IComponent) (*container.IndexMap[string, any], error) {
	slots, _ := component.(inject.ISlotContainer)
	if slots == nil {
		slots = emptySlots{}
	}

	requests, err := inject.GetInjectionRequests(component.Declarations(), name, slots)
	if err != nil {
		return nil, err
	}
	return inject.FindInjections(requests, ss.pool, name)
}

func assignComponent(name string, component IComponent, resolved *container.IndexMap[string, any]) error {
	if resolved.IsEmpty() {
		return runSetupHook(name, component)
	}

	assigner, ok := component.(ISlotAssigner)
	if !ok {
		return fmt.Errorf("component %v requests injections but cannot accept assignments (type %v)", name, reflect.TypeOf(component))
	}

	resolved.ScanKV(assigner.AssignSlot)
	return runSetupHook(name, component)
}

func runSetupHook(name string, component IComponent) (err error) {
	hook, ok := component.(ISetupHook)
	if !ok {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("component %v setup panicked: %v", name, r)
		}
	}()
	hook.Setup()
	return nil
}

// Execute 执行一次控制循环：依注册顺序调用各组件的 Execute，
// 随后采样反馈值。单个组件 panic 不打断本轮循环。
func (ss *Host) Execute() {
	ss.components.ScanKV(func(name string, component IComponent) {
		executable, ok := component.(IExecutable)
		if !ok {
			return
		}

		func() {
			defer func() {
				if r := recover(); r != nil {
					slog.Errorf("component %v execute panicked: %v", name, r)
				}
			}()
			executable.Execute()
		}()
	})

	ss.collectFeedback()
}

func (ss *Host) collectFeedback() {
	snapshot := container.NewIndexMap[string, any]()
	ss.components.ScanKV(func(name string, component IComponent) {
		source, ok := component.(IFeedbackSource)
		if !ok {
			return
		}
		source.ScanFeedbacks(func(fname string, fn func() any) {
			snapshot.Add(name+"/"+fname, fn())
		})
	})

	ss.lock.Lock()
	ss.feedback = snapshot
	ss.lock.Unlock()
}

// FeedbackSnapshot 返回最近一次循环采样的反馈值副本。
func (ss *Host) FeedbackSnapshot() *container.IndexMap[string, any] {
	ss.lock.Lock()
	defer ss.lock.Unlock()

	return ss.feedback.Copy()
}

// ComponentNames 按注册顺序返回组件名。
func (ss *Host) ComponentNames() container.List[string] {
	return ss.components.Keys()
}

// Component 按名返回组件。
func (ss *Host) Component(name string) (IComponent, bool) {
	return ss.components.Get(name)
}

// ScanInjectables 按键序遍历池。只读。
func (ss *Host) ScanInjectables(fn func(name string, value any)) {
	ss.pool.ScanKV(fn)
}

type emptySlots struct{}

func (emptySlots) ContainsSlot(string) bool { return false }
