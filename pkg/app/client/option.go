package client

import (
	"crypto/tls"
	"time"

	"github.com/favbox/courier/pkg/common/config"
	"github.com/favbox/courier/pkg/network"
)

// WithUserAgent 设置请求未带 User-Agent 标头时使用的值。
func WithUserAgent(ua string) config.ClientOption {
	return config.ClientOption{F: func(o *config.ClientOptions) {
		o.UserAgent = ua
	}}
}

// WithDialTimeout 设置建立连接的超时时长。
func WithDialTimeout(timeout time.Duration) config.ClientOption {
	return config.ClientOption{F: func(o *config.ClientOptions) {
		o.DialTimeout = timeout
	}}
}

// WithReadTimeout 设置读取响应的超时时长。
func WithReadTimeout(timeout time.Duration) config.ClientOption {
	return config.ClientOption{F: func(o *config.ClientOptions) {
		o.ReadTimeout = timeout
	}}
}

// WithDialer 设置自定义拨号器。
func WithDialer(d network.Dialer) config.ClientOption {
	return config.ClientOption{F: func(o *config.ClientOptions) {
		o.Dialer = d
	}}
}

// WithTLSConfig 设置 https 连接的 TLS 配置。对端证书始终不被校验。
func WithTLSConfig(cfg *tls.Config) config.ClientOption {
	return config.ClientOption{F: func(o *config.ClientOptions) {
		o.TLSConfig = cfg
	}}
}

// WithReceivedHeaders 设为真时，响应标头取自收到的响应头块而非请求头回显。
func WithReceivedHeaders(b bool) config.ClientOption {
	return config.ClientOption{F: func(o *config.ClientOptions) {
		o.ParseReceivedHeaders = b
	}}
}
