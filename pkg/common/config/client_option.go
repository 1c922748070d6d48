package config

import (
	"crypto/tls"
	"time"

	"github.com/favbox/courier/pkg/network"
	"github.com/favbox/courier/pkg/protocol/consts"
)

// ClientOption 是配置项 ClientOptions 唯一的配置方法结构体。
type ClientOption struct {
	F func(o *ClientOptions)
}

// ClientOptions 是传输句柄的配置项。
type ClientOptions struct {
	// 请求未设置 User-Agent 标头时使用的值。
	UserAgent string

	// 建立连接的超时时长，默认 30 秒。
	DialTimeout time.Duration

	// 读取响应的超时时长，默认为 0，即永不超时。
	ReadTimeout time.Duration

	// 自定义拨号器，为空时使用 dialer.DefaultDialer()。
	Dialer network.Dialer

	// https 目标使用的 TLS 配置。
	// 为空时使用不校验对端证书的默认配置。
	TLSConfig *tls.Config

	// 是否解析收到的响应头块，默认解析发出的请求头回显。
	ParseReceivedHeaders bool
}

// NewClientOptions 创建带默认值的配置项并应用 opts。
func NewClientOptions(opts []ClientOption) *ClientOptions {
	options := &ClientOptions{
		UserAgent:   consts.DefaultUserAgent,
		DialTimeout: consts.DefaultDialTimeout,
		ReadTimeout: consts.DefaultReadTimeout,
	}
	options.Apply(opts)
	return options
}

// Apply 依次应用配置方法。
func (o *ClientOptions) Apply(opts []ClientOption) {
	for _, op := range opts {
		op.F(o)
	}
}

// Clone 返回配置项的浅拷贝，TLSConfig 会被深拷贝。
func (o *ClientOptions) Clone() *ClientOptions {
	c := *o
	if o.TLSConfig != nil {
		c.TLSConfig = o.TLSConfig.Clone()
	}
	return &c
}
