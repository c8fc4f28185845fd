package status_test

import (
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"

	"github.com/flurry-dev/flurry/core/container"
	"github.com/flurry-dev/flurry/host"
	"github.com/flurry-dev/flurry/inject"
	"github.com/flurry-dev/flurry/statemachine"
	"github.com/flurry-dev/flurry/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type intake struct {
	host.BaseComponent
}

func (ss *intake) Declarations() *container.IndexMap[string, any] {
	return container.NewIndexMap(
		container.Pair[string, any]{First: "speed", Second: inject.TypeOf[float64]()},
	)
}

func (ss *intake) Setup() {
	ss.AddFeedback("speed", func() any {
		return host.GetSlot[float64](&ss.BaseComponent, "speed")
	})
}

func (ss *intake) Execute() {}

type shooterMachine struct {
	host.BaseComponent
	*statemachine.Machine
}

func (ss *shooterMachine) Declarations() *container.IndexMap[string, any] {
	return container.NewIndexMap[string, any]()
}

func newStatusHost(t *testing.T) *host.Host {
	t.Helper()

	h := host.New()

	m := &shooterMachine{Machine: statemachine.New("shooter", statemachine.NewManualClock())}
	m.State("spinup", func(ctx *statemachine.StateContext) {}, statemachine.First())
	m.TimedState("firing", time.Second, "", func(ctx *statemachine.StateContext) {})
	require.NoError(t, m.Build())

	require.NoError(t, h.Register("intake", &intake{}))
	require.NoError(t, h.Register("shooter", m))
	h.AddInjectable("speed", 3.5)

	require.NoError(t, h.Setup())
	h.Execute()
	return h
}

func serve(t *testing.T, routine *status.Routine, path string) []byte {
	t.Helper()

	var ctx fasthttp.RequestCtx
	ctx.Request.SetRequestURI(path)
	routine.Handler(&ctx)

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	return ctx.Response.Body()
}

func TestStatusComponents(t *testing.T) {
	routine := status.New(newStatusHost(t))

	body := serve(t, routine, "/components")

	var infos []struct {
		Name      string   `json:"name"`
		Slots     []string `json:"slots"`
		State     string   `json:"state"`
		Executing bool     `json:"executing"`
	}
	require.NoError(t, jsoniter.Unmarshal(body, &infos))
	require.Len(t, infos, 2)

	assert.Equal(t, "intake", infos[0].Name)
	assert.Equal(t, []string{"speed"}, infos[0].Slots)

	assert.Equal(t, "shooter", infos[1].Name)
	assert.False(t, infos[1].Executing)
}

func TestStatusInjectables(t *testing.T) {
	routine := status.New(newStatusHost(t))

	body := serve(t, routine, "/injectables")

	var infos []struct {
		Name string `json:"name"`
		Type string `json:"type"`
	}
	require.NoError(t, jsoniter.Unmarshal(body, &infos))

	byName := map[string]string{}
	for _, info := range infos {
		byName[info.Name] = info.Type
	}
	assert.Equal(t, "float64", byName["speed"])
	assert.Contains(t, byName, "intake")
	assert.Contains(t, byName, "shooter")
}

func TestStatusFeedback(t *testing.T) {
	routine := status.New(newStatusHost(t))

	body := serve(t, routine, "/feedback")

	var feedback map[string]any
	require.NoError(t, jsoniter.Unmarshal(body, &feedback))
	assert.Equal(t, 3.5, feedback["intake/speed"])
}

func TestStatusNotFound(t *testing.T) {
	routine := status.New(newStatusHost(t))

	var ctx fasthttp.RequestCtx
	ctx.Request.SetRequestURI("/nope")
	routine.Handler(&ctx)

	assert.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())
}
