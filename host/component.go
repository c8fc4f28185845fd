package host

import (
	"github.com/flurry-dev/flurry/core/container"
	"github.com/flurry-dev/flurry/inject"
)

// IComponent 宿主管理的组件：暴露槽位名到类型注解的有序声明。
type IComponent interface {
	Declarations() *container.IndexMap[string, any]
}

// ISlotAssigner 可接受解析结果的组件。
type ISlotAssigner interface {
	AssignSlot(name string, value any)
}

// IExecutable 参与控制循环的组件。
type IExecutable interface {
	Execute()
}

// ISetupHook 在注入完成后回调。
type ISetupHook interface {
	Setup()
}

var _ inject.ISlotContainer = (*BaseComponent)(nil)
var _ ISlotAssigner = (*BaseComponent)(nil)

// BaseComponent 嵌入后提供槽位存取与反馈注册。零值可用。
type BaseComponent struct {
	slots     container.IndexMap[string, any]
	feedbacks container.IndexMap[string, func() any]
}

func (ss *BaseComponent) ContainsSlot(name string) bool {
	return ss.slots.Contains(name)
}

func (ss *BaseComponent) AssignSlot(name string, value any) {
	ss.slots.Add(name, value)
}

func (ss *BaseComponent) Slot(name string) (any, bool) {
	return ss.slots.Get(name)
}

func (ss *BaseComponent) SlotNames() container.List[string] {
	return ss.slots.Keys()
}

// AddFeedback 注册反馈函数，宿主每次循环采样其返回值。
func (ss *BaseComponent) AddFeedback(name string, fn func() any) {
	ss.feedbacks.Add(name, fn)
}

func (ss *BaseComponent) ScanFeedbacks(fn func(name string, value func() any)) {
	ss.feedbacks.ScanKV(fn)
}

// GetSlot 以具体类型取出槽位值。槽位缺失或类型不符会 panic，
// 宿主在注入阶段已保证类型兼容。
func GetSlot[T any](component *BaseComponent, name string) T {
	value, ok := component.Slot(name)
	if !ok {
		panic("slot not assigned: " + name)
	}
	return value.(T)
}

// IFeedbackSource 提供反馈采样入口，由 BaseComponent 实现。
type IFeedbackSource interface {
	ScanFeedbacks(fn func(name string, value func() any))
}
