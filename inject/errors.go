package inject

import (
	"fmt"
	"reflect"
)

// ConfigError 私有名字出现在构造参数注解中。
type ConfigError struct {
	Component string
	Param     string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("cannot inject into component %s constructor param %s", e.Component, e.Param)
}

// TypeDeclarationError 注解归一化后仍不是运行时类型。
type TypeDeclarationError struct {
	Component   string
	Name        string
	Hint        any
	HasInstance bool
}

func (e *TypeDeclarationError) Error() string {
	message := fmt.Sprintf("component %s has a non-type annotation %s: %#v", e.Component, e.Name, e.Hint)
	if e.HasInstance {
		message += "\nlone non-injection annotations are disallowed, did you mean to assign a static value?"
	}
	return message
}

// MissingInjectableError 直接查找与组件名前缀查找均未命中。
type MissingInjectableError struct {
	Component string
	Name      string
	Type      reflect.Type
}

func (e *MissingInjectableError) Error() string {
	return fmt.Sprintf("component %s has variable %s (type %v), which is absent from the injectable pool", e.Component, e.Name, e.Type)
}

// TypeMismatchError 找到候选值但运行时类型与声明不符。
type TypeMismatchError struct {
	Component string
	Name      string
	Expected  reflect.Type
	Actual    reflect.Type
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("component %s variable %s does not match the declared type (got %v, expected %v)", e.Component, e.Name, e.Actual, e.Expected)
}
