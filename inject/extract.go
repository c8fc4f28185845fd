package inject

import (
	"reflect"
	"strings"

	"github.com/flurry-dev/flurry/core/container"
)

const privatePrefix = "_"

// GetInjectionRequests 从声明的类型注解中过滤出注入请求。
//
// typeHints 为槽位名到注解的有序映射；cname 为组件名，仅用于诊断与前缀查找；
// component 为已实例化的组件，nil 表示注解来自构造参数。
//
// 私有名字在构造参数上下文中是配置错误，在实例上下文中视为内部状态而跳过；
// 实例已持有的槽位视为手工赋值的静态变量而跳过；参数化注解归一为其原始类型；
// 归一化后仍非类型的注解为致命错误。
func GetInjectionRequests(typeHints *container.IndexMap[string, any], cname string, component ISlotContainer) (*container.IndexMap[string, reflect.Type], error) {
	requests := container.NewIndexMap[string, reflect.Type]()

	var err error
	typeHints.ScanKVIf(func(n string, hint any) bool {
		if strings.HasPrefix(n, privatePrefix) {
			if component == nil {
				err = &ConfigError{Component: cname, Param: n}
				return false
			}
			return true
		}

		if component != nil && component.ContainsSlot(n) {
			return true
		}

		injectType, ok := normalizeHint(hint)
		if !ok {
			err = &TypeDeclarationError{
				Component:   cname,
				Name:        n,
				Hint:        hint,
				HasInstance: component != nil,
			}
			return false
		}

		requests.Add(n, injectType)
		return true
	})

	if err != nil {
		return nil, err
	}
	return requests, nil
}
