package protocol

import (
	"strconv"
	"strings"
	"time"

	"github.com/favbox/courier/internal/bytesconv"
	"github.com/favbox/courier/internal/bytestr"
	errs "github.com/favbox/courier/pkg/common/errors"
	"github.com/favbox/courier/pkg/common/utils"
	"github.com/zeromicro/go-zero/core/jsonx"
)

// Cookie 是单个 Cookie 及其属性。
//
// 所有 With* 方法均返回修改后的副本。
type Cookie struct {
	name     string
	value    string
	expires  time.Time
	maxAge   int
	path     string
	domain   string
	secure   bool
	httpOnly bool
}

// CookieAttrs 是 Cookie 的属性配置，零值字段表示未设置。
type CookieAttrs struct {
	Value    string
	Expires  time.Time
	MaxAge   int
	Path     string
	Domain   string
	Secure   bool
	HTTPOnly bool
}

// NewCookie 创建无默认属性的 Cookie。name 不能为空。
func NewCookie(name string, attrs CookieAttrs) (Cookie, error) {
	return CookieFactory{}.New(name, attrs)
}

func (c Cookie) Name() string       { return c.name }
func (c Cookie) Value() string      { return c.value }
func (c Cookie) Expires() time.Time { return c.expires }
func (c Cookie) MaxAge() int        { return c.maxAge }
func (c Cookie) Path() string       { return c.path }
func (c Cookie) Domain() string     { return c.domain }
func (c Cookie) Secure() bool       { return c.secure }
func (c Cookie) HTTPOnly() bool     { return c.httpOnly }

func (c Cookie) WithValue(value string) Cookie {
	c.value = value
	return c
}

// WithJSONValue 以 v 的 JSON 编码作为值。
func (c Cookie) WithJSONValue(v any) (Cookie, error) {
	s, err := jsonx.MarshalToString(v)
	if err != nil {
		return c, errs.New(err, errs.ErrorTypeInvalidArgument, c.name)
	}
	return c.WithValue(s), nil
}

func (c Cookie) WithPath(path string) Cookie {
	c.path = path
	return c
}

func (c Cookie) WithDomain(domain string) Cookie {
	c.domain = domain
	return c
}

// WithExpires 设置绝对过期时间。
func (c Cookie) WithExpires(t time.Time) Cookie {
	c.expires = t
	return c
}

// WithExpiresIn 设置相对当前时间的过期时间。
func (c Cookie) WithExpiresIn(d time.Duration) Cookie {
	return c.WithExpires(time.Now().Add(d))
}

// WithMaxAge 设置相对过期秒数，0 表示未设置。
func (c Cookie) WithMaxAge(seconds int) Cookie {
	c.maxAge = seconds
	return c
}

func (c Cookie) WithSecure() Cookie {
	c.secure = true
	return c
}

func (c Cookie) WithHTTPOnly() Cookie {
	c.httpOnly = true
	return c
}

// AppendBytes 附加 Set-Cookie 形式的 Cookie 到 dst 并返回。
//
// Expires 与 Max-Age 互斥，两者都设置时只输出 Expires。
func (c Cookie) AppendBytes(dst []byte) []byte {
	dst = append(dst, c.name...)
	dst = append(dst, bytestr.StrEqual...)
	dst = append(dst, c.value...)
	if !c.expires.IsZero() {
		dst = append(dst, bytestr.StrCookieExpires...)
		dst = bytesconv.AppendHTTPDate(dst, c.expires)
	} else if c.maxAge != 0 {
		dst = append(dst, bytestr.StrCookieMaxAge...)
		dst = strconv.AppendInt(dst, int64(c.maxAge), 10)
	}
	if c.path != "" {
		dst = append(dst, bytestr.StrCookiePath...)
		dst = append(dst, c.path...)
	}
	if c.domain != "" {
		dst = append(dst, bytestr.StrCookieDomain...)
		dst = append(dst, c.domain...)
	}
	if c.secure {
		dst = append(dst, bytestr.StrCookieSecure...)
	}
	if c.httpOnly {
		dst = append(dst, bytestr.StrCookieHTTPOnly...)
	}
	return dst
}

// Render 返回 Set-Cookie 形式的字符串。
func (c Cookie) Render() string {
	return string(c.AppendBytes(nil))
}

// String 实现 fmt.Stringer，等同于 Render。
func (c Cookie) String() string {
	return c.Render()
}

// 将非零值属性覆盖到 c。
func (c Cookie) apply(a CookieAttrs) Cookie {
	if a.Value != "" {
		c.value = a.Value
	}
	if !a.Expires.IsZero() {
		c.expires = a.Expires
	}
	if a.MaxAge != 0 {
		c.maxAge = a.MaxAge
	}
	if a.Path != "" {
		c.path = a.Path
	}
	if a.Domain != "" {
		c.domain = a.Domain
	}
	if a.Secure {
		c.secure = true
	}
	if a.HTTPOnly {
		c.httpOnly = true
	}
	return c
}

// CookieFactory 以一组默认属性构造 Cookie，作用域为单次消息构建。
type CookieFactory struct {
	Defaults CookieAttrs
}

// New 先应用默认属性，再应用 overrides 中的非零值字段。
func (f CookieFactory) New(name string, overrides CookieAttrs) (Cookie, error) {
	if name == "" {
		return Cookie{}, errs.NewInvalidArgumentf("Cookie 名称不能为空")
	}
	c := Cookie{name: name}
	return c.apply(f.Defaults).apply(overrides), nil
}

// CookieSpec 是设置响应 Cookie 的参数，取值为 ByName 或 Prebuilt。
type CookieSpec interface {
	cookie(f CookieFactory) (Cookie, error)
}

// ByName 以名称和属性经由工厂构造 Cookie。
type ByName struct {
	Name  string
	Attrs CookieAttrs
}

func (s ByName) cookie(f CookieFactory) (Cookie, error) {
	return f.New(s.Name, s.Attrs)
}

// Prebuilt 直接使用已构造的 Cookie。
type Prebuilt struct {
	Cookie Cookie
}

func (s Prebuilt) cookie(CookieFactory) (Cookie, error) {
	if s.Cookie.name == "" {
		return Cookie{}, errs.NewInvalidArgumentf("Cookie 名称不能为空")
	}
	return s.Cookie, nil
}

// ParseCookieLine 解析 "a=1; b=2" 形式的 Cookie 行。
//
// 以 ';' 分段，每段在第一个 '=' 处拆分，名称和值均去除首尾空白。
// 无 '=' 或名称为空的段被丢弃，同名以最后一个为准。
func ParseCookieLine(line string) *Args {
	a := &Args{}
	for line != "" {
		var seg string
		seg, line, _ = strings.Cut(line, ";")
		name, value, ok := strings.Cut(seg, "=")
		if !ok {
			continue
		}
		name = utils.TrimSpace(name)
		if name == "" {
			continue
		}
		a.Set(name, utils.TrimSpace(value))
	}
	return a
}
