package resp

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http/httputil"
	"strings"

	"github.com/favbox/courier/internal/bytesconv"
	"github.com/favbox/courier/internal/bytestr"
	"github.com/favbox/courier/pkg/common/utils"
	"github.com/favbox/courier/pkg/protocol"
	"github.com/favbox/courier/pkg/protocol/consts"
	"github.com/favbox/courier/pkg/protocol/http1/ext"
)

// Read 从 r 读取一个 HTTP/1.x 响应，method 用于判断是否有正文。
//
// 返回的 Outcome 不含 HeaderOut，由调用方填写。
func Read(r *bufio.Reader, method string) (*Outcome, error) {
	raw, err := ext.ReadRawHeaders(r)
	if err != nil {
		return nil, err
	}
	o := &Outcome{HeaderIn: string(raw)}

	statusLine, _, _ := strings.Cut(o.HeaderIn, string(bytestr.StrLF))
	if o.StatusCode, err = ext.ParseStatusCode(strings.TrimRight(statusLine, "\r")); err != nil {
		return nil, err
	}

	var h protocol.HeaderBag
	ext.ParseHeaderBlock(o.HeaderIn, h.Set)
	o.ContentType = h.Get(consts.HeaderContentType)

	if !hasBody(method, o.StatusCode) {
		return o, nil
	}
	if o.Body, err = readBody(r, &h); err != nil {
		return nil, err
	}
	return o, nil
}

func hasBody(method string, code int) bool {
	if method == consts.MethodHead {
		return false
	}
	return code >= 200 && code != 204 && code != 304
}

func readBody(r *bufio.Reader, h *protocol.HeaderBag) ([]byte, error) {
	if te := h.Get(consts.HeaderTransferEncoding); utils.ContainsFold(te, string(bytestr.StrChunked)) {
		body, err := io.ReadAll(httputil.NewChunkedReader(r))
		if err != nil {
			return nil, fmt.Errorf("读取分块正文失败: %w", err)
		}
		return body, nil
	}

	if cl, ok := h.Lookup(consts.HeaderContentLength); ok {
		n, err := bytesconv.ParseUint(bytesconv.S2b(cl))
		if err != nil {
			return nil, fmt.Errorf("无效的 Content-Length %q: %w", cl, err)
		}
		// 按实际到达的字节增长缓冲，不按对端声明的长度预分配
		var buf bytes.Buffer
		if _, err = io.CopyN(&buf, r, int64(n)); err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return nil, fmt.Errorf("读取正文失败: %w", err)
		}
		return buf.Bytes(), nil
	}

	// 无长度信息时读到连接关闭
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("读取正文失败: %w", err)
	}
	return body, nil
}
