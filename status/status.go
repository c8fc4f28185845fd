package status

import (
	"fmt"
	"net"
	"reflect"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"

	"github.com/flurry-dev/flurry/core/logging/slog"
	"github.com/flurry-dev/flurry/core/task"
	"github.com/flurry-dev/flurry/host"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// IStateful 拥有状态机语义的组件在状态页上额外展示当前状态。
type IStateful interface {
	CurrentState() string
	IsExecuting() bool
}

type componentInfo struct {
	Name      string   `json:"name"`
	Slots     []string `json:"slots"`
	State     string   `json:"state,omitempty"`
	Executing bool     `json:"executing,omitempty"`
}

type injectableInfo struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Routine 只读暴露宿主的组件、池与反馈快照，不改变宿主状态。
type Routine struct {
	host     *host.Host
	server   *fasthttp.Server
	listener net.Listener
}

func New(h *host.Host) *Routine {
	routine := &Routine{host: h}
	routine.server = &fasthttp.Server{Handler: routine.Handler}
	return routine
}

func (ss *Routine) Handler(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Path()) {
	case "/components":
		ss.writeJSON(ctx, ss.components())
	case "/injectables":
		ss.writeJSON(ctx, ss.injectables())
	case "/feedback":
		ss.writeJSON(ctx, ss.feedback())
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
	}
}

func (ss *Routine) components() []componentInfo {
	var result []componentInfo
	for _, name := range ss.host.ComponentNames() {
		component, ok := ss.host.Component(name)
		if !ok {
			continue
		}

		info := componentInfo{Name: name, Slots: component.Declarations().Keys()}
		if stateful, ok := component.(IStateful); ok {
			info.State = stateful.CurrentState()
			info.Executing = stateful.IsExecuting()
		}
		result = append(result, info)
	}
	return result
}

func (ss *Routine) injectables() []injectableInfo {
	var result []injectableInfo
	ss.host.ScanInjectables(func(name string, value any) {
		result = append(result, injectableInfo{
			Name: name,
			Type: fmt.Sprintf("%v", reflect.TypeOf(value)),
		})
	})
	return result
}

func (ss *Routine) feedback() map[string]any {
	result := make(map[string]any)
	ss.host.FeedbackSnapshot().ScanKV(func(name string, value any) {
		result[name] = value
	})
	return result
}

func (ss *Routine) writeJSON(ctx *fasthttp.RequestCtx, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetBody(data)
}

// Start 在 addr 上开始服务，监听循环运行在协程池上。
func (ss *Routine) Start(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("status listen %v: %w", addr, err)
	}
	ss.listener = listener

	task.Execute(func() {
		if err := ss.server.Serve(listener); err != nil {
			slog.Warnf("status server stopped: %v", err)
		}
	})
	return nil
}

func (ss *Routine) Stop() error {
	if ss.listener == nil {
		return nil
	}
	return ss.server.Shutdown()
}
