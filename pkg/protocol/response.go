package protocol

import (
	"github.com/favbox/courier/internal/nocopy"
	errs "github.com/favbox/courier/pkg/common/errors"
	"github.com/favbox/courier/pkg/protocol/consts"
)

// Response 是 HTTP 响应消息。
type Response struct {
	noCopy nocopy.NoCopy

	Header HeaderBag

	statusCode int
	statusText string
	cookies    CookieJar
	body       Body
	factory    CookieFactory
}

// NewResponse 创建状态为 200 OK 的响应。
func NewResponse() *Response {
	return &Response{statusCode: consts.StatusOK, statusText: consts.StatusText(consts.StatusOK)}
}

// SetStatusCode 直接设置状态码，不校验状态文本。
func (resp *Response) SetStatusCode(code int) {
	resp.statusCode = code
	resp.statusText = ""
}

// StatusCode 返回状态码，未设置时为 200。
func (resp *Response) StatusCode() int {
	if resp.statusCode == 0 {
		return consts.StatusOK
	}
	return resp.statusCode
}

// SetStatus 设置状态码和状态文本。
//
// text 为空时取状态码的标准文本；仍无文本时返回 InvalidArgument 错误且原状态不变。
func (resp *Response) SetStatus(code int, text string) error {
	if text == "" {
		text = consts.StatusText(code)
	}
	if text == "" {
		return errs.NewInvalidArgumentf("未找到 HTTP 状态 %d", code)
	}
	resp.statusCode, resp.statusText = code, text
	return nil
}

// SetStatusText 为当前状态码设置状态文本，规则同 SetStatus。
func (resp *Response) SetStatusText(text string) error {
	return resp.SetStatus(resp.StatusCode(), text)
}

// StatusText 返回状态文本，未设置时取状态码的标准文本。
func (resp *Response) StatusText() string {
	if resp.statusText != "" {
		return resp.statusText
	}
	return consts.StatusText(resp.StatusCode())
}

// BodyBuffer 返回响应正文。
func (resp *Response) BodyBuffer() *Body {
	return &resp.body
}

// Body 返回原始正文。
func (resp *Response) Body() []byte {
	return resp.body.Bytes()
}

// SetBody 设置原始正文。
func (resp *Response) SetBody(p []byte) {
	resp.body.Set(p)
}

// SetBodyString 设置原始正文。
func (resp *Response) SetBodyString(s string) {
	resp.body.SetString(s)
}

// Write 追加正文，实现 io.Writer。
func (resp *Response) Write(p []byte) (int, error) {
	return resp.body.Write(p)
}

// WriteString 追加正文。
func (resp *Response) WriteString(s string) (int, error) {
	return resp.body.Write([]byte(s))
}

// SetBodyJSON 以 JSON 编码设置正文，未设置 Content-Type 时设为 application/json。
func (resp *Response) SetBodyJSON(v any) error {
	return setBodyJSON(&resp.Header, &resp.body, v)
}

// ParsedBody 按 Content-Type 返回解析后的正文。
func (resp *Response) ParsedBody(reload bool) (any, error) {
	return resp.body.Parsed(resp.Header.Get(consts.HeaderContentType), reload)
}

// Redirect 设置 Location 标头。
func (resp *Response) Redirect(to string) {
	resp.Header.Set(consts.HeaderLocation, to)
}

// SetCookieFactory 设置构造 Cookie 时使用的默认属性。
func (resp *Response) SetCookieFactory(f CookieFactory) {
	resp.factory = f
}

// CookieFactory 返回当前的 Cookie 工厂。
func (resp *Response) CookieFactory() CookieFactory {
	return resp.factory
}

// SetCookie 依据 spec 设置带属性的 Cookie。
func (resp *Response) SetCookie(spec CookieSpec) error {
	c, err := spec.cookie(resp.factory)
	if err != nil {
		return err
	}
	resp.cookies.SetCookie(c)
	return nil
}

// BuildCookie 经由工厂构造 Cookie，写入 Cookie 集合并返回。
func (resp *Response) BuildCookie(name string, attrs CookieAttrs) (Cookie, error) {
	c, err := resp.factory.New(name, attrs)
	if err != nil {
		return Cookie{}, err
	}
	resp.cookies.SetCookie(c)
	return c, nil
}

// Cookies 返回响应的 Cookie 集合。
func (resp *Response) Cookies() *CookieJar {
	return &resp.cookies
}

// Cookie 返回 Cookie 的值。
func (resp *Response) Cookie(name string) (string, bool) {
	return resp.cookies.Get(name)
}

// SetCookieLines 返回每个 Cookie 的 Set-Cookie 标头值。
func (resp *Response) SetCookieLines() []string {
	return resp.cookies.SetCookieLines()
}

// Reset 清空响应。
func (resp *Response) Reset() {
	resp.Header.Reset()
	resp.statusCode, resp.statusText = 0, ""
	resp.cookies.Reset()
	resp.body.Reset()
	resp.factory = CookieFactory{}
}
