package inject

import (
	"reflect"

	"github.com/flurry-dev/flurry/core/container"
	"github.com/flurry-dev/flurry/core/logging/slog"
)

// FindInjections 为每个注入请求在池中解析出值。
//
// 先按槽位名直接查找，未命中再按 "{cname}_{名字}" 查找；两者皆无即失败，
// 整个请求集在第一个无法满足的请求处终止。命中的值必须与声明类型兼容。
func FindInjections(requests *container.IndexMap[string, reflect.Type], injectables *Pool, cname string) (*container.IndexMap[string, any], error) {
	toInject := container.NewIndexMap[string, any]()

	var err error
	requests.ScanKVIf(func(n string, injectType reflect.Type) bool {
		injectable, ok := lookup(injectables, n)
		if !ok {
			injectable, ok = lookup(injectables, cname+"_"+n)
		}

		if !ok {
			err = &MissingInjectableError{Component: cname, Name: n, Type: injectType}
			return false
		}

		if !isInstanceOf(injectable, injectType) {
			err = &TypeMismatchError{
				Component: cname,
				Name:      n,
				Expected:  injectType,
				Actual:    reflect.TypeOf(injectable),
			}
			return false
		}

		toInject.Add(n, injectable)
		slog.Debugf("-> %s.%s = %v", cname, n, injectable)
		return true
	})

	if err != nil {
		return nil, err
	}
	return toInject, nil
}

// lookup 无条目与值为 nil 同样视为缺失。
func lookup(injectables *Pool, name string) (any, bool) {
	value, ok := injectables.Get(name)
	if !ok || value == nil {
		return nil, false
	}
	return value, true
}

// isInstanceOf 子类型包含的实例判定：接口目标要求实现关系，
// 其余要求可赋值。数值类型之间不做转换。
func isInstanceOf(value any, target reflect.Type) bool {
	actual := reflect.TypeOf(value)
	if actual == nil {
		return false
	}
	if target.Kind() == reflect.Interface {
		return actual.Implements(target)
	}
	return actual.AssignableTo(target)
}
