package logging

import (
	"fmt"
	"time"
)

var _ ILogger = (*DefaultLogger)(nil)

type DefaultLogger struct {
	path    string
	name    string
	handler ILogHandler
}

func NewDefaultLogger(path string, handler ILogHandler) *DefaultLogger {
	return &DefaultLogger{
		path:    path,
		handler: handler,
	}
}

// WithName 返回以 name 标记日志行的新 logger，handler 不变。
func (ss *DefaultLogger) WithName(name string) *DefaultLogger {
	return &DefaultLogger{
		path:    ss.path,
		name:    name,
		handler: ss.handler,
	}
}

func (ss *DefaultLogger) log(level Level, format string, args ...any) {
	logData := &LogData{
		Time:  time.Now(),
		Path:  ss.path,
		Name:  ss.name,
		Level: level,
		Message: func() string {
			return fmt.Sprintf(format, args...)
		},
	}
	ss.handler.Log(logData)
}

func (ss *DefaultLogger) Tracef(format string, args ...any) {
	ss.log(TRACE, format, args...)
}

func (ss *DefaultLogger) Debugf(format string, args ...any) {
	ss.log(DEBUG, format, args...)
}

func (ss *DefaultLogger) Infof(format string, args ...any) {
	ss.log(INFO, format, args...)
}

func (ss *DefaultLogger) Warnf(format string, args ...any) {
	ss.log(WARN, format, args...)
}

func (ss *DefaultLogger) Errorf(format string, args ...any) {
	ss.log(ERROR, format, args...)
}

func (ss *DefaultLogger) Fatalf(format string, args ...any) {
	ss.log(FATAL, format, args...)
}
