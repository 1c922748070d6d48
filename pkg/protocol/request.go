package protocol

import (
	"strings"

	"github.com/favbox/courier/internal/nocopy"
	"github.com/favbox/courier/pkg/protocol/consts"
)

// Request 是 HTTP 请求消息。
type Request struct {
	noCopy nocopy.NoCopy

	Header HeaderBag

	method  string
	uri     URI
	cookies CookieJar
	body    Body
	query   Args
	post    Args
	userIP  string
	files   map[string]UploadedFile
}

// NewRequest 创建请求。
func NewRequest(method, uri string) (*Request, error) {
	req := &Request{}
	req.SetMethod(method)
	if err := req.SetRequestURI(uri); err != nil {
		return nil, err
	}
	return req, nil
}

// SetMethod 设置请求方法，方法名转为大写。
func (req *Request) SetMethod(method string) {
	req.method = strings.ToUpper(method)
}

// Method 返回请求方法，未设置时为 GET。
func (req *Request) Method() string {
	if req.method == "" {
		return consts.MethodGet
	}
	return req.method
}

// IsMethod 报告请求方法是否为 method，不分大小写。
func (req *Request) IsMethod(method string) bool {
	return req.Method() == strings.ToUpper(method)
}

// SetURI 设置请求 URI。
//
// 除非 preserveHost 为真且尚无 Host 标头，否则以 URI 的主机和端口更新 Host 标头。
func (req *Request) SetURI(u URI, preserveHost bool) {
	req.uri = u
	if !preserveHost || req.Header.Has(consts.HeaderHost) {
		req.updateHostFromURI()
	}
}

// SetRequestURI 解析并设置请求 URI，同时更新 Host 标头。
func (req *Request) SetRequestURI(s string) error {
	u, err := ParseURI(s)
	if err != nil {
		return err
	}
	req.SetURI(u, false)
	return nil
}

func (req *Request) updateHostFromURI() {
	if hp := req.uri.HostPort(); hp != "" {
		req.Header.Set(consts.HeaderHost, hp)
	}
}

// URI 返回请求 URI。
func (req *Request) URI() URI {
	return req.uri
}

// RequestTarget 返回组合后的请求 URI 字符串。
func (req *Request) RequestTarget() string {
	return req.uri.Compose()
}

// Path 返回请求路径。
func (req *Request) Path() string {
	return req.uri.Path()
}

// QueryArgs 返回查询参数。
func (req *Request) QueryArgs() *Args {
	return &req.query
}

// PostArgs 返回表单参数。
func (req *Request) PostArgs() *Args {
	return &req.post
}

// SetQuery 以映射替换查询参数。
func (req *Request) SetQuery(m map[string]string) {
	req.query.Reset()
	req.query.SetAll(m)
}

// SetPost 以映射替换表单参数。
func (req *Request) SetPost(m map[string]string) {
	req.post.Reset()
	req.post.SetAll(m)
}

// Query 返回查询参数的值。
func (req *Request) Query(name string) (string, bool) {
	return req.query.PeekExists(name)
}

// QueryMany 返回一组查询参数，缺失的参数值为空字符串。
func (req *Request) QueryMany(names []string) map[string]string {
	return pickArgs(&req.query, names)
}

// QueryList 按 names 的顺序返回查询参数的值。
func (req *Request) QueryList(names []string) []string {
	return listArgs(&req.query, names)
}

// Post 返回表单参数的值。
func (req *Request) Post(name string) (string, bool) {
	return req.post.PeekExists(name)
}

// PostMany 返回一组表单参数，缺失的参数值为空字符串。
func (req *Request) PostMany(names []string) map[string]string {
	return pickArgs(&req.post, names)
}

// PostList 按 names 的顺序返回表单参数的值。
func (req *Request) PostList(names []string) []string {
	return listArgs(&req.post, names)
}

// Params 返回与请求方法对应的参数：GET 为查询参数，POST 为表单参数，其他方法为空。
func (req *Request) Params() *Args {
	switch req.Method() {
	case consts.MethodGet:
		return &req.query
	case consts.MethodPost:
		return &req.post
	}
	return &Args{}
}

// Param 返回与请求方法对应的参数值。
func (req *Request) Param(name string) (string, bool) {
	return req.Params().PeekExists(name)
}

// ParamList 按 names 的顺序返回与请求方法对应的参数值。
func (req *Request) ParamList(names []string) []string {
	return listArgs(req.Params(), names)
}

func (req *Request) SetUserIP(ip string) { req.userIP = ip }
func (req *Request) UserIP() string      { return req.userIP }

// SetUploadedFiles 设置上传文件。
func (req *Request) SetUploadedFiles(files map[string]UploadedFile) {
	req.files = files
}

// HasUploadedFiles 报告是否有上传文件。
func (req *Request) HasUploadedFiles() bool {
	return len(req.files) > 0
}

// UploadedFiles 返回所有上传文件。
func (req *Request) UploadedFiles() map[string]UploadedFile {
	return req.files
}

// UploadedFile 返回指定名称的上传文件。
func (req *Request) UploadedFile(name string) (UploadedFile, bool) {
	f, ok := req.files[name]
	return f, ok && f != nil
}

// SetCookie 设置请求 Cookie 的原始值。
func (req *Request) SetCookie(name, value string) {
	req.cookies.Set(name, value)
}

// SetCookies 批量设置请求 Cookie。
func (req *Request) SetCookies(m map[string]string) {
	req.cookies.SetAll(m)
}

// Cookie 返回请求 Cookie 的值。
func (req *Request) Cookie(name string) (string, bool) {
	return req.cookies.Get(name)
}

// HasCookie 报告请求 Cookie 是否存在。
func (req *Request) HasCookie(name string) bool {
	return req.cookies.Has(name)
}

// Cookies 返回请求的 Cookie 集合。
func (req *Request) Cookies() *CookieJar {
	return &req.cookies
}

// ParseCookieHeader 解析 Cookie 标头并写入 Cookie 集合。
func (req *Request) ParseCookieHeader() {
	v, ok := req.Header.Lookup(consts.HeaderCookie)
	if !ok || v == "" {
		return
	}
	ParseCookieLine(v).VisitAll(req.cookies.Set)
}

// BodyBuffer 返回请求正文。
func (req *Request) BodyBuffer() *Body {
	return &req.body
}

// Body 返回原始正文。
func (req *Request) Body() []byte {
	return req.body.Bytes()
}

// SetBody 设置原始正文。
func (req *Request) SetBody(p []byte) {
	req.body.Set(p)
}

// SetBodyString 设置原始正文。
func (req *Request) SetBodyString(s string) {
	req.body.SetString(s)
}

// AppendBody 追加原始正文。
func (req *Request) AppendBody(p []byte) {
	req.body.Append(p)
}

// SetBodyJSON 以 JSON 编码设置正文，未设置 Content-Type 时设为 application/json。
func (req *Request) SetBodyJSON(v any) error {
	return setBodyJSON(&req.Header, &req.body, v)
}

// ParsedBody 按 Content-Type 返回解析后的正文。
func (req *Request) ParsedBody(reload bool) (any, error) {
	return req.body.Parsed(req.Header.Get(consts.HeaderContentType), reload)
}

// Reset 清空请求。
func (req *Request) Reset() {
	req.Header.Reset()
	req.method = ""
	req.uri = URI{}
	req.cookies.Reset()
	req.body.Reset()
	req.query.Reset()
	req.post.Reset()
	req.userIP = ""
	req.files = nil
}

func setBodyJSON(h *HeaderBag, b *Body, v any) error {
	if err := b.SetJSON(v); err != nil {
		return err
	}
	if !h.Has(consts.HeaderContentType) {
		h.Set(consts.HeaderContentType, consts.MIMEApplicationJSON)
	}
	return nil
}

func pickArgs(a *Args, names []string) map[string]string {
	m := make(map[string]string, len(names))
	for _, name := range names {
		m[name] = a.Peek(name)
	}
	return m
}

func listArgs(a *Args, names []string) []string {
	list := make([]string, len(names))
	for i, name := range names {
		list[i] = a.Peek(name)
	}
	return list
}
