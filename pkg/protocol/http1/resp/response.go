package resp

import (
	"github.com/favbox/courier/pkg/protocol"
	"github.com/favbox/courier/pkg/protocol/consts"
	"github.com/favbox/courier/pkg/protocol/http1/ext"
)

// Outcome 是一次传输执行的原始结果。
type Outcome struct {
	// 状态码
	StatusCode int
	// 对端声明的内容类型
	ContentType string
	// 发出的请求头回显，首行为请求行
	HeaderOut string
	// 收到的响应头块，首行为状态行
	HeaderIn string
	// 响应正文
	Body []byte
}

// Parse 将传输结果还原到响应消息 dst。
//
// 状态码和正文直接写入；标头块 (useReceived 为真时用收到的响应头，否则用请求头回显)
// 逐行合并到 dst.Header，随后 Content-Type 总被覆盖为对端声明的值；
// 若此时存在 Cookie 标头，则按 Cookie 行规则解析到 dst 的 Cookie 集合。
func Parse(o *Outcome, dst *protocol.Response, useReceived bool) {
	dst.SetStatusCode(o.StatusCode)
	dst.SetBody(o.Body)

	block := o.HeaderOut
	if useReceived {
		block = o.HeaderIn
	}
	ext.ParseHeaderBlock(block, dst.Header.Set)
	dst.Header.Set(consts.HeaderContentType, o.ContentType)

	if line, ok := dst.Header.Lookup(consts.HeaderCookie); ok {
		jar := dst.Cookies()
		protocol.ParseCookieLine(line).VisitAll(jar.Set)
	}
}
