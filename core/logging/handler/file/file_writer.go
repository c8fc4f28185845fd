package file

import (
	"fmt"
	"io"
	"os"
	"path"

	"github.com/klauspost/compress/gzip"

	"github.com/flurry-dev/flurry/core/task"
)

type writerElement struct {
	File    string
	Message string
}

type writer struct {
	fileName string
	file     *os.File
	compress bool
}

func newWriter(c <-chan *writerElement, compress bool) *writer {
	w := &writer{compress: compress}
	task.Execute(func() { w.loop(c) })
	return w
}

func (ss *writer) loop(c <-chan *writerElement) {
	for {
		unit, ok := <-c
		if !ok {
			break
		}

		if ss.fileName == unit.File {
			_, _ = fmt.Fprintln(ss.file, unit.Message)
			continue
		}

		dir := path.Dir(unit.File)
		_ = os.MkdirAll(dir, 0755)

		f, err := os.OpenFile(unit.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			fmt.Printf("### ERROR ### log to file <%s>: %s\n", unit.File, err.Error())
			continue
		}

		if ss.file != nil {
			_ = ss.file.Close()
			if ss.compress {
				compressFile(ss.fileName)
			}
		}

		fmt.Printf("### NOTICE ### create log file <%s>\n", unit.File)
		ss.file = f
		ss.fileName = unit.File
		_, _ = fmt.Fprintln(f, unit.Message)
	}
}

// compressFile 将滚动下线的日志文件压缩为 .gz 并删除原文件。
func compressFile(name string) {
	src, err := os.Open(name)
	if err != nil {
		fmt.Printf("### ERROR ### compress log file <%s>: %s\n", name, err.Error())
		return
	}
	defer func() { _ = src.Close() }()

	dst, err := os.OpenFile(name+".gz", os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Printf("### ERROR ### compress log file <%s>: %s\n", name, err.Error())
		return
	}

	gw := gzip.NewWriter(dst)
	_, err = io.Copy(gw, src)
	if err == nil {
		err = gw.Close()
	} else {
		_ = gw.Close()
	}
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Printf("### ERROR ### compress log file <%s>: %s\n", name, err.Error())
		_ = os.Remove(name + ".gz")
		return
	}

	_ = os.Remove(name)
}
