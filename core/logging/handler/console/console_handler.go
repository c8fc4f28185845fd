package console

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/flurry-dev/flurry/core/logging"
)

var _ logging.ILogHandler = (*Handler)(nil)

type Option struct {
	Formatter    string                   `koanf:"Formatter"`
	ErrorLevel   logging.Level            `koanf:"ErrorLevel"`
	Filter       map[string]logging.Level `koanf:"Filter"`
	DefaultLevel logging.Level            `koanf:"DefaultLevel"`
}

type Handler struct {
	lock             sync.Mutex
	option           *Option
	sortedFilterKeys []string
	formatter        func(logData *logging.LogData) string
}

func NewHandler() *Handler {
	handler := &Handler{
		option: &Option{
			Formatter:    "Color",
			ErrorLevel:   logging.ERROR,
			DefaultLevel: logging.INFO,
			Filter:       make(map[string]logging.Level),
		},
		formatter: logging.ColorLogFormatter,
	}
	handler.checkOption()
	return handler
}

// SetOption 替换当前配置，通常以 option 包加载的数据调用。
func (ss *Handler) SetOption(opt *Option, repo *logging.LogFormatterContainer) {
	ss.lock.Lock()
	defer ss.lock.Unlock()

	ss.option = opt
	if repo != nil {
		ss.formatter = repo.GetFormatter(opt.Formatter)
	}
	if ss.formatter == nil {
		ss.formatter = logging.ColorLogFormatter
	}
	ss.checkOption()
}

func (ss *Handler) checkOption() {
	ss.sortedFilterKeys = ss.sortedFilterKeys[:0]
	for key := range ss.option.Filter {
		ss.sortedFilterKeys = append(ss.sortedFilterKeys, key)
	}
	sort.Strings(ss.sortedFilterKeys)

	if ss.option.DefaultLevel == logging.NONE {
		ss.option.DefaultLevel = logging.INFO
	}
	if ss.option.ErrorLevel == logging.NONE {
		ss.option.ErrorLevel = logging.ERROR
	}
}

func (ss *Handler) Log(logData *logging.LogData) {
	if logData.Level == logging.NONE {
		return
	}

	ss.lock.Lock()
	curOption := ss.option
	filterKeys := ss.sortedFilterKeys
	formatter := ss.formatter
	ss.lock.Unlock()

	filterLevel := curOption.DefaultLevel
	for _, key := range filterKeys {
		if strings.HasPrefix(logData.Path, key) {
			filterLevel = curOption.Filter[key]
			break
		}
	}

	if logData.Level < filterLevel {
		return
	}

	message := formatter(logData)

	if logData.Level < curOption.ErrorLevel {
		_, _ = fmt.Fprintln(os.Stdout, message)
	} else {
		_, _ = fmt.Fprintln(os.Stderr, message)
	}
}
