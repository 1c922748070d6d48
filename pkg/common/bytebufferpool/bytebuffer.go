package bytebufferpool

import (
	"io"
	"sync"
)

// 超过该容量的缓冲区不再回收。
const maxPooledCap = 64 << 10

// ByteBuffer 提供可复用的字节缓冲区，用于拼装请求头等有线数据。
type ByteBuffer struct {
	// B 是用于 append 操作的缓冲区。
	B []byte
}

var pool = sync.Pool{
	New: func() any {
		return &ByteBuffer{B: make([]byte, 0, 512)}
	},
}

// Get 返回缓冲池中的一个空缓冲区。
func Get() *ByteBuffer {
	return pool.Get().(*ByteBuffer)
}

// Put 将缓冲区放回池中。放回以后不可再触碰 b.B，否则将引发数据竞赛。
func Put(b *ByteBuffer) {
	if cap(b.B) > maxPooledCap {
		return
	}
	b.Reset()
	pool.Put(b)
}

// Len 返回缓冲区的大小。
func (b *ByteBuffer) Len() int {
	return len(b.B)
}

// Bytes 返回缓冲区累计的所有字节。
func (b *ByteBuffer) Bytes() []byte {
	return b.B
}

// Write 实现 io.Writer。
func (b *ByteBuffer) Write(p []byte) (int, error) {
	b.B = append(b.B, p...)
	return len(p), nil
}

// WriteString 附加字符串 s 到缓冲区。
func (b *ByteBuffer) WriteString(s string) (int, error) {
	b.B = append(b.B, s...)
	return len(s), nil
}

// WriteByte 附加字节 c 到缓冲区。
func (b *ByteBuffer) WriteByte(c byte) error {
	b.B = append(b.B, c)
	return nil
}

// WriteTo 实现 io.WriterTo。
func (b *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.B)
	return int64(n), err
}

// String 返回缓冲区内容的字符串副本。
func (b *ByteBuffer) String() string {
	return string(b.B)
}

// Reset 清空缓冲区。
func (b *ByteBuffer) Reset() {
	b.B = b.B[:0]
}
