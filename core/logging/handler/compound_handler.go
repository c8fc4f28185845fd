package handler

import (
	"github.com/flurry-dev/flurry/core/container"
	"github.com/flurry-dev/flurry/core/logging"
)

var _ logging.ILogHandler = (*CompoundHandler)(nil)

type CompoundHandler struct {
	proxy container.List[logging.ILogHandler]
}

func NewCompoundHandler() *CompoundHandler {
	return &CompoundHandler{}
}

func (ss *CompoundHandler) AddHandler(handler logging.ILogHandler) {
	ss.proxy.Add(handler)
}

func (ss *CompoundHandler) Log(data *logging.LogData) {
	for _, h := range ss.proxy {
		h.Log(data)
	}
}
