package file

import (
	"fmt"
	"os"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/flurry-dev/flurry/core/logging"
)

var _ logging.ILogHandler = (*Handler)(nil)

type Option struct {
	LogPath          string                   `koanf:"LogPath"`
	MaxLogChanLength int                      `koanf:"MaxLogChanLength"`
	Formatter        string                   `koanf:"Formatter"`
	Compress         bool                     `koanf:"Compress"`
	Filter           map[string]logging.Level `koanf:"Filter"`
	DefaultLevel     logging.Level            `koanf:"DefaultLevel"`
}

// Handler 将日志按天写入文件，写盘在独立协程中进行以免阻塞调用方。
type Handler struct {
	lock sync.Mutex

	fileName   string
	year       int
	month      time.Month
	day        int
	logChan    chan *writerElement
	fileWriter *writer

	option           *Option
	sortedFilterKeys []string
	formatter        func(logData *logging.LogData) string
}

func NewHandler() *Handler {
	handler := &Handler{
		option: &Option{
			LogPath:          "logs",
			MaxLogChanLength: 102400,
			Formatter:        "Default",
			DefaultLevel:     logging.INFO,
			Filter:           make(map[string]logging.Level),
		},
		formatter: logging.DefaultLogFormatter,
		logChan:   make(chan *writerElement, 102400),
	}
	handler.fileWriter = newWriter(handler.logChan, false)
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
		ss.formatter = logging.DefaultLogFormatter
	}
	ss.checkOption()

	if ss.option.MaxLogChanLength != cap(ss.logChan) {
		close(ss.logChan)
		ss.logChan = make(chan *writerElement, ss.option.MaxLogChanLength)
		ss.fileWriter = newWriter(ss.logChan, ss.option.Compress)
	}
}

func (ss *Handler) checkOption() {
	ss.sortedFilterKeys = ss.sortedFilterKeys[:0]
	for key := range ss.option.Filter {
		ss.sortedFilterKeys = append(ss.sortedFilterKeys, key)
	}
	sort.Strings(ss.sortedFilterKeys)

	if ss.option.MaxLogChanLength <= 0 {
		ss.option.MaxLogChanLength = 102400
	}
	if len(ss.option.LogPath) == 0 {
		ss.option.LogPath = "logs"
	}
	if ss.option.DefaultLevel == logging.NONE {
		ss.option.DefaultLevel = logging.INFO
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
	logCh := ss.logChan
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

	unit := &writerElement{
		File:    ss.refreshFileName(logData.Time),
		Message: message,
	}
	select {
	case logCh <- unit:
	default:
		_, _ = fmt.Fprintln(os.Stderr, "file log channel full")
	}
}

func (ss *Handler) refreshFileName(now time.Time) string {
	year, month, day := now.Date()

	ss.lock.Lock()
	defer ss.lock.Unlock()
	if len(ss.fileName) == 0 || ss.year != year || ss.month != month || ss.day != day {
		// 跨天了
		ss.year = year
		ss.month = month
		ss.day = day
		ss.fileName = path.Join(ss.option.LogPath, fmt.Sprintf("%04d_%02d_%02d.log", year, month, day))
	}
	return ss.fileName
}
