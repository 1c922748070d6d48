package client

import (
	"context"
	"time"

	"github.com/favbox/courier/pkg/common/config"
	errs "github.com/favbox/courier/pkg/common/errors"
	"github.com/favbox/courier/pkg/protocol"
	"github.com/favbox/courier/pkg/protocol/http1"
	"github.com/favbox/courier/pkg/protocol/http1/proxy"
	"github.com/favbox/courier/pkg/protocol/http1/req"
	"github.com/favbox/courier/pkg/protocol/http1/resp"
)

// Request 是可发送的请求消息，独占一个传输句柄。
//
// 句柄在首次使用时创建，可经 Reset 复用，Close 后释放。
// Request 不可并发使用。
//
//	r, err := client.NewRequest("GET", "https://example.com/")
//	if err != nil {
//		return err
//	}
//	defer r.Close()
//	resp, err := r.Send(ctx)
type Request struct {
	*protocol.Request

	opts   []config.ClientOption
	handle *http1.Client
	closed bool
}

// NewRequest 创建请求，opts 作为传输句柄的初始配置。
func NewRequest(method, uri string, opts ...config.ClientOption) (*Request, error) {
	r, err := protocol.NewRequest(method, uri)
	if err != nil {
		return nil, err
	}
	return &Request{Request: r, opts: opts}, nil
}

// Wrap 以已填充的请求消息创建可发送的请求。
func Wrap(r *protocol.Request, opts ...config.ClientOption) *Request {
	return &Request{Request: r, opts: opts}
}

// WithUserAgent 设置 User-Agent 默认值，Close 之后调用无效。
func (r *Request) WithUserAgent(ua string) *Request {
	if h, err := r.client(); err == nil {
		h.Options().UserAgent = ua
	}
	return r
}

// WithTimeout 设置建立连接的超时时长，Close 之后调用无效。
func (r *Request) WithTimeout(timeout time.Duration) *Request {
	if h, err := r.client(); err == nil {
		h.Options().DialTimeout = timeout
	}
	return r
}

// WithProxy 校验并设置代理。
//
// 缺少 type、ip 或 port 时返回 TransportConfigError，原代理设置不变。
func (r *Request) WithProxy(spec proxy.Spec) error {
	p, err := proxy.New(spec)
	if err != nil {
		return err
	}
	h, err := r.client()
	if err != nil {
		return err
	}
	h.SetProxy(p)
	return nil
}

// Proxy 返回当前的代理配置，未设置时为 nil。
func (r *Request) Proxy() *proxy.Config {
	if r.handle == nil {
		return nil
	}
	return r.handle.Proxy()
}

// PrepareSend 将请求组装为待发送的形态。
func (r *Request) PrepareSend() (*req.Wire, error) {
	return req.Build(r.Request)
}

// Send 发送请求并返回响应，阻塞直到传输完成或失败。
//
// 传输失败返回 TransportError，不会自动重试。
func (r *Request) Send(ctx context.Context) (*protocol.Response, error) {
	h, err := r.client()
	if err != nil {
		return nil, err
	}
	w, err := r.PrepareSend()
	if err != nil {
		return nil, err
	}
	o, err := h.Do(ctx, w)
	if err != nil {
		return nil, err
	}

	res := protocol.NewResponse()
	resp.Parse(o, res, h.Options().ParseReceivedHeaders)
	return res, nil
}

// Reset 清除句柄上的配置变更和代理，句柄本身保留。
func (r *Request) Reset() {
	if r.handle != nil {
		r.handle.Reset()
	}
}

// Close 释放传输句柄，之后的 Send 返回 TransportError。重复调用是安全的。
func (r *Request) Close() error {
	r.handle = nil
	r.closed = true
	return nil
}

func (r *Request) client() (*http1.Client, error) {
	if r.closed {
		return nil, errs.New(errs.ErrNoHandle, errs.ErrorTypeTransport, nil)
	}
	if r.handle == nil {
		r.handle = http1.NewClient(config.NewClientOptions(r.opts))
	}
	return r.handle, nil
}
