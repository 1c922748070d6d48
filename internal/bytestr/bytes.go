// Package bytestr 定义一些常用字节化字符串。
package bytestr

var JSONContentType = []byte("application/json")

var (
	StrSlash      = []byte("/")
	StrSlashSlash = []byte("//")
	StrCRLF       = []byte("\r\n")
	StrLF         = []byte("\n")
	StrHTTP       = []byte("http")
	StrHTTPS      = []byte("https")
	StrFile       = []byte("file")
	StrHTTP11     = []byte("HTTP/1.1")
	StrColon      = []byte(":")
	StrColonSpace = []byte(": ")
	StrSemicolon  = []byte(";")
	StrEqual      = []byte("=")
	StrAt         = []byte("@")
	StrSocks      = []byte("socks")
	StrChunked    = []byte("chunked")
	StrClose      = []byte("close")
)

// Set-Cookie 属性。
var (
	StrCookieExpires  = []byte("; Expires=")
	StrCookieMaxAge   = []byte("; Max-Age=")
	StrCookiePath     = []byte("; Path=")
	StrCookieDomain   = []byte("; Domain=")
	StrCookieSecure   = []byte("; Secure")
	StrCookieHTTPOnly = []byte("; HttpOnly")
)
