package ext

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/favbox/courier/pkg/common/hlog"
	"github.com/favbox/courier/pkg/common/utils"
)

// 原始标头块的最大字节数。
const maxRawHeaderSize = 1 << 20

var (
	errHeaderTooLarge = errors.New("标头块过大")
	errEmptyHeader    = errors.New("标头块为空")
)

// BufferSnippet 返回字节切片的片段。
//
// 形如: <前缀 20 位>...<后缀 20 位>
//
// 若长度不超过 40，则直接返回原始切片。
func BufferSnippet(b []byte) string {
	n := len(b)
	start := 20
	end := n - start
	if start >= end {
		return fmt.Sprintf("%q", b)
	}
	return fmt.Sprintf("%q...%q", b[:start], b[end:])
}

// ParseHeaderBlock 解析换行分隔的标头块，对每个有效标头调用 visit。
//
// 丢弃所有 '\r' 后按 '\n' 分行，第一行（请求行或状态行）无论内容如何都被丢弃；
// 其余各行在第一个 ':' 处拆分，名称和值均去除首尾空白。
// 无 ':' 或名称为空的行被跳过。
func ParseHeaderBlock(block string, visit func(name, value string)) {
	block = strings.ReplaceAll(block, "\r", "")
	_, rest, ok := strings.Cut(block, "\n")
	if !ok {
		return
	}
	for rest != "" {
		var line string
		line, rest, _ = strings.Cut(rest, "\n")
		if line == "" {
			continue
		}
		name, value, ok := strings.Cut(line, ":")
		name = utils.TrimSpace(name)
		if !ok || name == "" {
			hlog.SystemLogger().Debugf("跳过无效的标头行 %s", BufferSnippet([]byte(line)))
			continue
		}
		visit(name, utils.TrimSpace(value))
	}
}

// ReadRawHeaders 从 r 读取一个完整的原始标头块，包含首行和末尾空行。
func ReadRawHeaders(r *bufio.Reader) ([]byte, error) {
	var dst []byte
	partial := false
	for {
		line, err := r.ReadSlice('\n')
		if err != nil && !errors.Is(err, bufio.ErrBufferFull) {
			if len(dst)+len(line) == 0 {
				return nil, err
			}
			return nil, fmt.Errorf("读取标头块 %s 失败: %w", BufferSnippet(append(dst, line...)), err)
		}
		dst = append(dst, line...)
		if len(dst) > maxRawHeaderSize {
			return nil, errHeaderTooLarge
		}
		if err != nil {
			// 行超出缓冲区，继续读取剩余部分
			partial = true
			continue
		}
		if !partial && isOnlyCRLF(line) {
			if len(dst) == len(line) {
				return nil, errEmptyHeader
			}
			return dst, nil
		}
		partial = false
	}
}

func isOnlyCRLF(b []byte) bool {
	for _, ch := range b {
		if ch != '\r' && ch != '\n' {
			return false
		}
	}
	return true
}

// ParseStatusCode 从 "HTTP/1.1 200 OK" 形式的状态行中解析状态码。
func ParseStatusCode(line string) (int, error) {
	_, status, ok := strings.Cut(line, " ")
	if !ok {
		return 0, fmt.Errorf("无效的状态行: %s", BufferSnippet([]byte(line)))
	}
	code, _, _ := strings.Cut(strings.TrimLeft(status, " "), " ")
	n, err := strconv.Atoi(code)
	if err != nil || len(code) != 3 {
		return 0, fmt.Errorf("无效的状态码: %q", code)
	}
	return n, nil
}
