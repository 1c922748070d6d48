package mock

import (
	"bufio"
	"io"
	"strings"
)

// SlowReader 每次 Read 至多返回一个字节，用于测试分段到达的数据。
type SlowReader struct {
	r io.Reader
}

// NewSlowReader 返回读取 s 的 SlowReader。
func NewSlowReader(s string) *SlowReader {
	return &SlowReader{r: strings.NewReader(s)}
}

func (m *SlowReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	return m.r.Read(p[:1])
}

// NewBufioReader 返回缓冲区为 size 字节、底层为 SlowReader 的 bufio.Reader。
//
// bufio 的最小缓冲区为 16 字节，size 小于 16 时以 16 为准。
func NewBufioReader(s string, size int) *bufio.Reader {
	return bufio.NewReaderSize(NewSlowReader(s), size)
}
