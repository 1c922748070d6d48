package protocol

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/favbox/courier/internal/bytesconv"
	"github.com/favbox/courier/internal/bytestr"
	errs "github.com/favbox/courier/pkg/common/errors"
	"github.com/favbox/courier/pkg/protocol/consts"
)

// 各协议的默认端口。
var defaultPorts = map[string]int{
	"http":   80,
	"https":  443,
	"ftp":    21,
	"gopher": 70,
	"nntp":   119,
	"news":   119,
	"telnet": 23,
	"tn3270": 23,
	"imap":   143,
	"pop":    110,
	"ldap":   389,
}

// 协议为 http/https 且无主机时使用的主机名。
const defaultHTTPHost = "localhost"

// DefaultPort 返回协议的默认端口，未知协议返回 false。
func DefaultPort(scheme string) (int, bool) {
	p, ok := defaultPorts[bytesconv.ToLower(scheme)]
	return p, ok
}

// URI 是不可变的统一资源标识符值。
//
// 所有 With* 方法均返回修改后的副本，原值保持不变。
// 协议和主机始终以小写保存，与协议默认端口相同的端口会被清除。
type URI struct {
	scheme   string
	userInfo string
	host     string
	port     int
	hasPort  bool
	path     string
	query    string
	fragment string
}

// ParseURI 解析绝对或相对 URI 字符串。
//
// 各组成部分经由对应的 With* 方法规范化。
// 带有 "//" 但主机为空的 URI（如 "http:///x"）返回 InvalidURI，file 协议除外。
func ParseURI(s string) (URI, error) {
	pu, err := url.Parse(s)
	if err != nil {
		return URI{}, errs.New(err, errs.ErrorTypeInvalidURI, s)
	}
	if hasEmptyAuthority(s, pu) {
		return URI{}, errs.Newf(errs.ErrorTypeInvalidURI, s, "URI 的授权部分缺少主机: %s", s)
	}

	var u URI
	u = u.WithScheme(pu.Scheme)
	if pu.User != nil && pu.User.Username() != "" {
		pass, _ := pu.User.Password()
		u = u.WithUserInfo(pu.User.Username(), pass)
	}
	u = u.WithHost(pu.Hostname())
	if ps := pu.Port(); ps != "" {
		port, err := strconv.Atoi(ps)
		if err != nil || port > consts.MaxPort {
			return URI{}, errs.Newf(errs.ErrorTypeInvalidURI, s, "无效的 URI 端口: %s", ps)
		}
		if u, err = u.WithPort(port); err != nil {
			return URI{}, err
		}
	}
	if pu.Opaque != "" {
		u = u.WithPath(pu.Opaque)
	} else {
		u = u.WithPath(pu.EscapedPath())
	}
	u = u.WithQuery(pu.RawQuery)
	u = u.WithFragment(pu.EscapedFragment())
	return u, nil
}

// 报告 s 是否带有 "//" 授权部分但主机为空，file 协议除外。
func hasEmptyAuthority(s string, pu *url.URL) bool {
	if pu.Scheme == "" || pu.Hostname() != "" || pu.Opaque != "" {
		return false
	}
	if bytesconv.ToLower(pu.Scheme) == string(bytestr.StrFile) {
		return false
	}
	rest := s[len(pu.Scheme)+1:]
	return strings.HasPrefix(rest, string(bytestr.StrSlashSlash))
}

// MustParseURI 与 ParseURI 相同，但解析失败时恐慌。
func MustParseURI(s string) URI {
	u, err := ParseURI(s)
	if err != nil {
		panic(err)
	}
	return u
}

func (u URI) Scheme() string   { return u.scheme }
func (u URI) UserInfo() string { return u.userInfo }
func (u URI) Host() string     { return u.host }
func (u URI) Path() string     { return u.path }
func (u URI) Query() string    { return u.query }
func (u URI) Fragment() string { return u.fragment }

// Port 返回端口，未设置端口时 ok 为 false。
func (u URI) Port() (port int, ok bool) {
	return u.port, u.hasPort
}

// WithScheme 设置协议。
//
// 协议为 http/https 且无主机时，主机设为 localhost。
func (u URI) WithScheme(scheme string) URI {
	u.scheme = bytesconv.ToLower(scheme)
	u.removeDefaultPort()
	if u.host == "" && (u.scheme == string(bytestr.StrHTTP) || u.scheme == string(bytestr.StrHTTPS)) {
		u.host = defaultHTTPHost
	}
	return u
}

// WithUserInfo 设置用户信息，形如 "user[:password]"。password 为空时省略。
func (u URI) WithUserInfo(user, password string) URI {
	u.userInfo = user
	if password != "" {
		u.userInfo += ":" + password
	}
	return u
}

// WithHost 设置主机。
func (u URI) WithHost(host string) URI {
	u.host = bytesconv.ToLower(host)
	return u
}

// WithPort 设置端口，端口须位于 [0, 65535]，否则返回 InvalidArgument 错误且原值不变。
func (u URI) WithPort(port int) (URI, error) {
	if port < 0 || port > consts.MaxPort {
		return u, errs.NewInvalidArgumentf("无效的端口: %d，必须位于 0 到 65535 之间", port)
	}
	u.port, u.hasPort = port, true
	u.removeDefaultPort()
	return u, nil
}

// WithoutPort 清除端口。
func (u URI) WithoutPort() URI {
	u.port, u.hasPort = 0, false
	return u
}

// WithPath 设置路径。
func (u URI) WithPath(path string) URI {
	u.path = path
	return u
}

// WithQuery 设置原始查询字符串，不含前导 '?'。空字符串视为无查询。
func (u URI) WithQuery(query string) URI {
	u.query = query
	return u
}

// WithQueryParams 将键值逐一转义后以 '&' 连接为查询字符串。
//
// 键按字典序排列，params 为空时查询保持不变。
func (u URI) WithQueryParams(params map[string]string) URI {
	if len(params) == 0 {
		return u
	}
	var b []byte
	for i, k := range sortedKeys(params) {
		if i > 0 {
			b = append(b, '&')
		}
		b = bytesconv.AppendQuotedArg(b, bytesconv.S2b(k))
		b = append(b, '=')
		b = bytesconv.AppendQuotedArg(b, bytesconv.S2b(params[k]))
	}
	return u.WithQuery(string(b))
}

// WithFragment 设置片段，不含前导 '#'。
func (u URI) WithFragment(fragment string) URI {
	u.fragment = fragment
	return u
}

// Authority 返回 "[userinfo@]host[:port]"，主机为空时返回空字符串。
func (u URI) Authority() string {
	if u.host == "" {
		return ""
	}
	var b strings.Builder
	if u.userInfo != "" {
		b.WriteString(u.userInfo)
		b.Write(bytestr.StrAt)
	}
	if strings.IndexByte(u.host, ':') >= 0 {
		// IPv6 字面量
		b.WriteByte('[')
		b.WriteString(u.host)
		b.WriteByte(']')
	} else {
		b.WriteString(u.host)
	}
	if u.hasPort {
		b.Write(bytestr.StrColon)
		b.Write(bytesconv.AppendUint(nil, u.port))
	}
	return b.String()
}

// HostPort 返回 "host[:port]"，用于 Host 标头。
func (u URI) HostPort() string {
	if u.host == "" {
		return ""
	}
	a := u.WithUserInfo("", "")
	return a.Authority()
}

// IsDefaultPort 报告端口是否未设置或等于协议默认端口。
func (u URI) IsDefaultPort() bool {
	if !u.hasPort {
		return true
	}
	p, ok := defaultPorts[u.scheme]
	return ok && p == u.port
}

// IsNetwork 报告 URI 是否同时有协议和授权部分。
func (u URI) IsNetwork() bool {
	return u.scheme != "" && u.Authority() != ""
}

// IsAbsolute 报告 URI 是否为以 '/' 开头的绝对路径引用。
func (u URI) IsAbsolute() bool {
	return u.scheme == "" && u.Authority() == "" &&
		u.path != "" && u.path[0] == '/'
}

// IsRelative 报告 URI 是否为相对路径引用。
func (u URI) IsRelative() bool {
	return u.scheme == "" && u.Authority() == "" &&
		(u.path == "" || u.path[0] != '/')
}

// Compose 将 URI 组合为字符串。
func (u URI) Compose() string {
	return ComposeComponents(u.scheme, u.Authority(), u.path, u.query, u.fragment)
}

// String 实现 fmt.Stringer，等同于 Compose。
func (u URI) String() string {
	return u.Compose()
}

// ComposeComponents 将各组成部分组合为语法有效的 URI 字符串。
//
// 存在授权部分或协议为 file 时，路径总是以 '/' 开头。
func ComposeComponents(scheme, authority, path, query, fragment string) string {
	var b strings.Builder
	if scheme != "" {
		b.WriteString(scheme)
		b.WriteByte(':')
	}
	withAuthority := authority != "" || scheme == string(bytestr.StrFile)
	if withAuthority {
		b.Write(bytestr.StrSlashSlash)
		b.WriteString(authority)
		if path != "" && path[0] != '/' {
			b.Write(bytestr.StrSlash)
		}
	}
	b.WriteString(path)
	if query != "" {
		b.WriteByte('?')
		b.WriteString(query)
	}
	if fragment != "" {
		b.WriteByte('#')
		b.WriteString(fragment)
	}
	return b.String()
}

func (u *URI) removeDefaultPort() {
	if u.hasPort && u.IsDefaultPort() {
		u.port, u.hasPort = 0, false
	}
}
