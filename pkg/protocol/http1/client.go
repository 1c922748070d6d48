package http1

import (
	"bufio"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/favbox/courier/internal/bytestr"
	"github.com/favbox/courier/internal/nocopy"
	"github.com/favbox/courier/pkg/common/config"
	errs "github.com/favbox/courier/pkg/common/errors"
	"github.com/favbox/courier/pkg/common/hlog"
	"github.com/favbox/courier/pkg/common/panics"
	"github.com/favbox/courier/pkg/network"
	"github.com/favbox/courier/pkg/network/dialer"
	"github.com/favbox/courier/pkg/protocol"
	"github.com/favbox/courier/pkg/protocol/http1/proxy"
	"github.com/favbox/courier/pkg/protocol/http1/req"
	"github.com/favbox/courier/pkg/protocol/http1/resp"
)

// Client 是可复用的传输句柄。
//
// 每次 Do 都新建连接并在返回前关闭，句柄本身只保存配置和代理。
// Client 不可并发使用。
type Client struct {
	noCopy nocopy.NoCopy

	base  *config.ClientOptions
	opts  *config.ClientOptions
	proxy *proxy.Config
}

// NewClient 以 opts 创建传输句柄，opts 为空时使用默认配置。
func NewClient(opts *config.ClientOptions) *Client {
	if opts == nil {
		opts = config.NewClientOptions(nil)
	}
	return &Client{base: opts.Clone(), opts: opts.Clone()}
}

// Options 返回当前配置，可直接修改。
func (c *Client) Options() *config.ClientOptions {
	return c.opts
}

// SetProxy 设置代理，p 为空时直连。
func (c *Client) SetProxy(p *proxy.Config) {
	c.proxy = p
}

// Proxy 返回当前代理配置。
func (c *Client) Proxy() *proxy.Config {
	return c.proxy
}

// Reset 将配置恢复到创建时的状态并清除代理，句柄本身继续可用。
func (c *Client) Reset() {
	c.opts = c.base.Clone()
	c.proxy = nil
}

// Do 执行一次请求并返回原始结果。
//
// 参数校验失败返回对应类型的错误，其余失败（包括恐慌）均为 TransportError。
func (c *Client) Do(ctx context.Context, w *req.Wire) (o *resp.Outcome, err error) {
	if r := panics.Try(func() { o, err = c.do(ctx, w) }); r != nil {
		err = r.AsError()
	}
	if err != nil {
		hlog.SystemLogger().Debugf("发送 %s %s 失败: %v", w.Method, w.URL.Compose(), err)
		var e *errs.Error
		if errors.As(err, &e) {
			return nil, err
		}
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			err = fmt.Errorf("%w: %v", errs.ErrTimeout, err)
		}
		return nil, errs.NewTransport(err)
	}
	return o, nil
}

func (c *Client) do(ctx context.Context, w *req.Wire) (*resp.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	u := w.URL
	if u.Host() == "" {
		return nil, errs.NewInvalidArgumentf("请求地址缺少主机: %q", u.Compose())
	}
	isTLS := u.Scheme() == string(bytestr.StrHTTPS)
	addr := dialAddr(u)

	conn, forward, err := c.dial(ctx, addr, isTLS, c.tlsConfig(u.Host(), w.InsecureSkipVerify))
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			hlog.SystemLogger().Warnf("关闭到 %s 的连接失败: %v", addr, cerr)
		}
	}()

	if dl, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(dl)
	} else if c.opts.ReadTimeout > 0 {
		_ = conn.SetDeadline(time.Now().Add(c.opts.ReadTimeout))
	}

	wo := req.WriteOptions{UserAgent: c.opts.UserAgent, Forward: forward}
	if forward {
		wo.ProxyAuth, _ = c.proxy.AuthHeader()
	}
	echo, err := req.Write(conn, w, wo)
	if err != nil {
		return nil, err
	}

	o, err := resp.Read(bufio.NewReader(conn), w.Method)
	if err != nil {
		return nil, err
	}
	o.HeaderOut = string(echo)
	return o, nil
}

func (c *Client) dial(ctx context.Context, addr string, isTLS bool, tlsConfig *tls.Config) (conn net.Conn, forward bool, err error) {
	d := c.dialer()
	if c.proxy == nil {
		hlog.SystemLogger().Debugf("直连 %s", addr)
		if !isTLS {
			tlsConfig = nil
		}
		conn, err = d.DialTimeout("tcp", addr, c.opts.DialTimeout, tlsConfig)
		return conn, false, err
	}

	if conn, forward, err = c.proxy.Dial(ctx, d, addr, isTLS, c.opts.DialTimeout); err != nil {
		return nil, false, err
	}
	if isTLS {
		tlsConn, err := d.AddTLS(conn, tlsConfig)
		if err != nil {
			_ = conn.Close()
			return nil, false, err
		}
		conn = tlsConn
	}
	return conn, forward, nil
}

func (c *Client) dialer() network.Dialer {
	if c.opts.Dialer != nil {
		return c.opts.Dialer
	}
	return dialer.DefaultDialer()
}

func (c *Client) tlsConfig(host string, insecure bool) *tls.Config {
	cfg := &tls.Config{}
	if c.opts.TLSConfig != nil {
		cfg = c.opts.TLSConfig.Clone()
	}
	if insecure {
		cfg.InsecureSkipVerify = true
	}
	if cfg.ServerName == "" {
		cfg.ServerName = host
	}
	return cfg
}

// 返回 "host:port"，未设置端口时使用协议的默认端口。
func dialAddr(u protocol.URI) string {
	port, ok := u.Port()
	if !ok {
		port, ok = protocol.DefaultPort(u.Scheme())
		if !ok {
			port = 80
		}
	}
	return net.JoinHostPort(u.Host(), strconv.Itoa(port))
}
