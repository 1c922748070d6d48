package req

import (
	"io"
	"strings"

	"github.com/favbox/courier/internal/bytestr"
	"github.com/favbox/courier/pkg/common/bytebufferpool"
	"github.com/favbox/courier/pkg/common/utils"
	"github.com/favbox/courier/pkg/protocol"
	"github.com/favbox/courier/pkg/protocol/consts"
)

// WriteOptions 控制请求头的写入方式。
type WriteOptions struct {
	// 消息中没有 User-Agent 标头时使用。
	UserAgent string
	// 经由 http 代理转发时为真，请求目标使用绝对形式。
	Forward bool
	// 转发时附带的 Proxy-Authorization 标头值。
	ProxyAuth string
}

// Write 将 HTTP/1.1 请求头和正文写入 dst，返回写出的请求头作为标头回显。
func Write(dst io.Writer, w *Wire, opts WriteOptions) (echo []byte, err error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	buf.B = AppendHead(buf.B, w, opts)
	echo = append([]byte(nil), buf.B...)

	if _, err = dst.Write(buf.B); err != nil {
		return nil, err
	}
	if len(w.Body) > 0 {
		if _, err = dst.Write(w.Body); err != nil {
			return nil, err
		}
	}
	return echo, nil
}

// AppendHead 附加请求行和全部标头行到 dst 并返回。
func AppendHead(dst []byte, w *Wire, opts WriteOptions) []byte {
	dst = append(dst, w.Method...)
	dst = append(dst, ' ')
	dst = append(dst, RequestTarget(w.URL, opts.Forward)...)
	dst = append(dst, ' ')
	dst = append(dst, bytestr.StrHTTP11...)
	dst = append(dst, bytestr.StrCRLF...)

	if !hasLine(w.Lines, consts.HeaderHost) {
		if hp := w.URL.HostPort(); hp != "" {
			dst = appendLine(dst, consts.HeaderHost, hp)
		}
	}
	for _, line := range w.Lines {
		dst = append(dst, line...)
		dst = append(dst, bytestr.StrCRLF...)
	}
	if opts.UserAgent != "" && !hasLine(w.Lines, consts.HeaderUserAgent) {
		dst = appendLine(dst, consts.HeaderUserAgent, opts.UserAgent)
	}
	if opts.Forward && opts.ProxyAuth != "" && !hasLine(w.Lines, consts.HeaderProxyAuthorization) {
		dst = appendLine(dst, consts.HeaderProxyAuthorization, opts.ProxyAuth)
	}
	if !hasLine(w.Lines, consts.HeaderConnection) {
		dst = appendLine(dst, consts.HeaderConnection, string(bytestr.StrClose))
	}
	return append(dst, bytestr.StrCRLF...)
}

// RequestTarget 返回请求行中的目标。
//
// 转发时为不含片段的绝对地址，否则为 "path[?query]"，空路径以 "/" 代替。
func RequestTarget(u protocol.URI, forward bool) string {
	u = u.WithFragment("")
	if forward {
		return u.Compose()
	}
	path := u.Path()
	if path == "" || path[0] != '/' {
		path = "/" + path
	}
	if q := u.Query(); q != "" {
		return path + "?" + q
	}
	return path
}

func appendLine(dst []byte, name, value string) []byte {
	dst = append(dst, name...)
	dst = append(dst, bytestr.StrColonSpace...)
	dst = append(dst, value...)
	return append(dst, bytestr.StrCRLF...)
}

func hasLine(lines []string, name string) bool {
	for _, line := range lines {
		if k, _, ok := strings.Cut(line, string(bytestr.StrColon)); ok && utils.CaseInsensitiveCompare(k, name) {
			return true
		}
	}
	return false
}
