package option

import (
	"path"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/flurry-dev/flurry/core/logging/slog"
)

// WatchJSONFile 加载 JSON 配置文件并监听其变更。文件被写入或重建时重新加载，
// 随后调用 onReload。监听失败不影响首次加载。
// 返回的 stop 关闭监听器并结束监听协程，可多次调用。
func WatchJSONFile(filePath string, onReload func()) (stop func(), err error) {
	if err := AddJSONFile(filePath); err != nil {
		return func() {}, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		slog.Warnf("option watcher create failed: %v", err)
		return func() {}, nil
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write | fsnotify.Create) {
					continue
				}
				if !pathEquals(event.Name, filePath) {
					continue
				}
				// 编辑器常以多次写入保存文件，稍作延迟合并
				go func() {
					<-time.After(200 * time.Millisecond)
					if err := AddJSONFile(filePath); err != nil {
						slog.Warnf("option reload(%v): %v", filePath, err)
						return
					}
					if onReload != nil {
						onReload()
					}
				}()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Warnf("option watcher error: %v", err)
			}
		}
	}()

	if err := watcher.Add(filePath); err != nil {
		parentDir := path.Dir(filePath)
		if err := watcher.Add(parentDir); err != nil {
			slog.Warnf("option watcher cannot watch %v: %v", parentDir, err)
		}
	}
	return func() { _ = watcher.Close() }, nil
}

func pathEquals(path1, path2 string) bool {
	p1 := strings.ReplaceAll(path1, "\\", "/")
	p2 := strings.ReplaceAll(path2, "\\", "/")
	return p1 == p2
}
