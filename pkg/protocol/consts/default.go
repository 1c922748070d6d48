package consts

import "time"

const (
	// DefaultDialTimeout 是建立连接的默认超时时长。
	DefaultDialTimeout = 30 * time.Second
	// DefaultReadTimeout 是读取响应的默认超时时长，0 代表永不超时。
	DefaultReadTimeout = 0
	// DefaultUserAgent 是请求未设置 User-Agent 时使用的值。
	DefaultUserAgent = "courier"
	// MaxPort 是端口号的上限。
	MaxPort = 65535
)
