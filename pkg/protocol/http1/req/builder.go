package req

import (
	"strconv"

	errs "github.com/favbox/courier/pkg/common/errors"
	"github.com/favbox/courier/pkg/protocol"
	"github.com/favbox/courier/pkg/protocol/consts"
	"golang.org/x/net/http/httpguts"
)

// Wire 是可直接发送的请求形态。
type Wire struct {
	// 请求方法，始终为大写。
	Method string
	// 已附加查询参数的目标地址。
	URL protocol.URI
	// "Name: value" 形式的标头行，顺序同标头集合的写入顺序。
	Lines []string
	// 方法不是 GET 时为消息正文。
	Body []byte
	// 方法为 POST 时为真。
	Post bool
	// 方法既非 GET 也非 POST 时的自定义方法。
	CustomMethod string
	// 不校验对端 TLS 证书。
	InsecureSkipVerify bool
}

// Build 将请求组装为 Wire。
//
// Content-Length（仅限非 GET 方法）和 Cookie 标头会写回 r.Header。
// 标头名称或值无效时返回 InvalidArgument。
func Build(r *protocol.Request) (*Wire, error) {
	w := &Wire{
		Method:             r.Method(),
		InsecureSkipVerify: true,
	}

	if w.Method != consts.MethodGet {
		w.Body = r.Body()
		if w.Method == consts.MethodPost {
			w.Post = true
		} else {
			w.CustomMethod = w.Method
		}
		r.Header.Set(consts.HeaderContentLength, strconv.Itoa(len(w.Body)))
	}

	if jar := r.Cookies(); jar.Len() > 0 {
		r.Header.Set(consts.HeaderCookie, jar.RequestLine())
	}

	var err error
	r.Header.VisitAll(func(name, value string) {
		if err != nil {
			return
		}
		if !httpguts.ValidHeaderFieldName(name) {
			err = errs.NewInvalidArgumentf("无效的标头名称: %q", name)
		} else if !httpguts.ValidHeaderFieldValue(value) {
			err = errs.NewInvalidArgumentf("标头 %s 的值无效: %q", name, value)
		}
	})
	if err != nil {
		return nil, err
	}
	w.Lines = r.Header.RenderLines()

	w.URL = withQueryArgs(r.URI(), r.QueryArgs())
	return w, nil
}

// 将查询参数以 '&' 连接到 URI 已有的查询之后。
func withQueryArgs(u protocol.URI, args *protocol.Args) protocol.URI {
	if args.Len() == 0 {
		return u
	}
	q := args.String()
	if cur := u.Query(); cur != "" {
		q = cur + "&" + q
	}
	return u.WithQuery(q)
}
