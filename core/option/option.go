package option

import (
	"fmt"
	"os"
	"reflect"
	"sync"

	jsonparser "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	stripjsoncomments "github.com/trapcodeio/go-strip-json-comments"
)

var lock sync.RWMutex
var k = koanf.New(":")

var typeKeyBinding = make(map[reflect.Type]string)

// GetByKey 通过 key 返回配置
func GetByKey(key string, inout any) error {
	lock.RLock()
	defer lock.RUnlock()

	if err := k.Unmarshal(key, inout); err != nil {
		return fmt.Errorf("unmarshal option key(%v): %w", key, err)
	}
	return nil
}

// Get 通过类型获取配置，类型须先以 BindType 绑定到 key
func Get[T any]() (out *T, err error) {
	optionType := reflect.TypeOf((*T)(nil))
	out = new(T)

	lock.RLock()
	key, ok := typeKeyBinding[optionType]
	lock.RUnlock()

	if ok {
		err = GetByKey(key, out)
	}
	return
}

// BindType 将类型绑定到 key，而后通过 Get 可以直接获取配置数据
func BindType[T any](key string) {
	lock.Lock()
	defer lock.Unlock()

	typeKeyBinding[reflect.TypeOf((*T)(nil))] = key
}

// Contains 判断 key 是否存在
func Contains(key string) bool {
	lock.RLock()
	defer lock.RUnlock()

	return k.Exists(key)
}

func AddJSONBytes(jsonRawBytes []byte) error {
	jsonWithoutComments := stripjsoncomments.Strip(string(jsonRawBytes))

	lock.Lock()
	defer lock.Unlock()

	if err := k.Load(rawbytes.Provider([]byte(jsonWithoutComments)), jsonparser.Parser()); err != nil {
		return fmt.Errorf("parse option json: %w", err)
	}
	return nil
}

func AddJSONFile(filePath string) error {
	jsonRawBytes, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read option file(%v): %w", filePath, err)
	}
	return AddJSONBytes(jsonRawBytes)
}
