package consts

const (
	HeaderDate     = "Date"
	HeaderHost     = "Host"
	HeaderLocation = "Location" // 重定向
)

// 传输编码类
const (
	HeaderTransferEncoding = "Transfer-Encoding"
)

// 控制类
const (
	HeaderCookie    = "Cookie"
	HeaderSetCookie = "Set-Cookie"
)

// 连接管理类
const (
	HeaderConnection      = "Connection"
	HeaderProxyConnection = "Proxy-Connection"
)

// 鉴权类
const (
	HeaderAuthorization      = "Authorization"
	HeaderProxyAuthorization = "Proxy-Authorization"
)

// 请求上下文
const (
	HeaderUserAgent = "User-Agent"
	HeaderReferer   = "Referer"
)

// 消息正文信息
const (
	HeaderContentLength   = "Content-Length"
	HeaderContentType     = "Content-Type"
	HeaderContentEncoding = "Content-Encoding"
)

// 内容类型
const (
	MIMEApplicationJSON = "application/json"
	MIMETextPlain       = "text/plain"
	MIMEFormURLEncoded  = "application/x-www-form-urlencoded"
)
