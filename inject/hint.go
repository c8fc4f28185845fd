package inject

import (
	"reflect"
)

// ISlotContainer 表示已实例化组件：可以判断某个槽位是否已被赋值。
// 提取请求时传入 nil 表示注解来自构造参数而非组件实例。
type ISlotContainer interface {
	ContainsSlot(name string) bool
}

// Generic 参数化类型注解。匹配时只使用 Origin，类型参数仅作展示。
type Generic struct {
	Origin reflect.Type
	Args   []reflect.Type
}

func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func Parameterized[T any](args ...reflect.Type) *Generic {
	return &Generic{Origin: TypeOf[T](), Args: args}
}

// normalizeHint 将注解归一为可匹配的运行时类型。
// 合法注解为 reflect.Type 或带 Origin 的 *Generic，其余均视为非类型注解。
func normalizeHint(hint any) (reflect.Type, bool) {
	switch h := hint.(type) {
	case reflect.Type:
		if h == nil {
			return nil, false
		}
		return h, true
	case *Generic:
		if h == nil || h.Origin == nil {
			return nil, false
		}
		return h.Origin, true
	default:
		return nil, false
	}
}
