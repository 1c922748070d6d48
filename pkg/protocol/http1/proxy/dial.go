package proxy

import (
	"bufio"
	"context"
	"encoding/base64"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/favbox/courier/internal/bytestr"
	errs "github.com/favbox/courier/pkg/common/errors"
	"github.com/favbox/courier/pkg/common/hlog"
	"github.com/favbox/courier/pkg/network"
	"github.com/favbox/courier/pkg/protocol/consts"
	"github.com/favbox/courier/pkg/protocol/http1/ext"
	xproxy "golang.org/x/net/proxy"
)

// 等待 CONNECT 响应的超时时长，以免永久阻塞。
const connectTimeout = time.Minute

// AuthHeader 返回 Proxy-Authorization 标头值，未设置凭据时 ok 为 false。
func (c *Config) AuthHeader() (value string, ok bool) {
	if c.Credentials == "" {
		return "", false
	}
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(c.Credentials)), true
}

// Dial 经由代理建立到 addr 的连接。
//
// tunnel 为真时 http 代理使用 CONNECT 隧道；否则直接连到代理，
// 此时 forward 为真，调用方需以绝对形式发送请求目标并附带代理鉴权标头。
func (c *Config) Dial(ctx context.Context, d network.Dialer, addr string, tunnel bool, timeout time.Duration) (conn net.Conn, forward bool, err error) {
	hlog.SystemLogger().Debugf("经由 %s 代理 %s 连接 %s", c.Kind, c.hostPort, addr)

	switch c.Kind {
	case KindSOCKS5, KindSOCKS5Hostname:
		conn, err = c.dialSOCKS5(ctx, d, addr, timeout)
		return conn, false, err
	case KindSOCKS4, KindSOCKS4A:
		return nil, false, errs.NewTransport(fmt.Errorf("暂不支持 %s 代理", c.Kind))
	}

	// http 及未知类型
	conn, err = d.DialTimeout("tcp", c.hostPort, timeout, nil)
	if err != nil {
		return nil, false, errs.NewTransport(err)
	}
	if !tunnel {
		return conn, true, nil
	}
	if err = c.connect(conn, addr); err != nil {
		_ = conn.Close()
		return nil, false, errs.NewTransport(err)
	}
	return conn, false, nil
}

func (c *Config) dialSOCKS5(ctx context.Context, d network.Dialer, addr string, timeout time.Duration) (net.Conn, error) {
	var auth *xproxy.Auth
	if c.login != "" {
		auth = &xproxy.Auth{User: c.login, Password: c.password}
	}
	fwd := forwardDialer{d: d, timeout: timeout}
	sd, err := xproxy.SOCKS5("tcp", c.hostPort, auth, fwd)
	if err != nil {
		return nil, errs.NewTransport(err)
	}

	if c.Kind == KindSOCKS5 {
		// 本地解析目标主机名
		if addr, err = resolveLocally(ctx, addr); err != nil {
			return nil, errs.NewTransport(err)
		}
	}

	var conn net.Conn
	if cd, ok := sd.(xproxy.ContextDialer); ok {
		conn, err = cd.DialContext(ctx, "tcp", addr)
	} else {
		conn, err = sd.Dial("tcp", addr)
	}
	if err != nil {
		return nil, errs.NewTransport(err)
	}
	return conn, nil
}

func resolveLocally(ctx context.Context, addr string) (string, error) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "", err
	}
	if net.ParseIP(host) != nil {
		return addr, nil
	}
	ips, err := net.DefaultResolver.LookupIPAddr(ctx, host)
	if err != nil {
		return "", err
	}
	if len(ips) == 0 {
		return "", fmt.Errorf("无法解析主机 %s", host)
	}
	return net.JoinHostPort(ips[0].IP.String(), port), nil
}

// 写入 CONNECT 请求并校验代理的响应状态。
func (c *Config) connect(conn net.Conn, addr string) error {
	_ = conn.SetDeadline(time.Now().Add(connectTimeout))
	defer func() { _ = conn.SetDeadline(time.Time{}) }()

	var b strings.Builder
	b.WriteString(consts.MethodConnect + " " + addr + " ")
	b.Write(bytestr.StrHTTP11)
	b.Write(bytestr.StrCRLF)
	b.WriteString(consts.HeaderHost + ": " + addr)
	b.Write(bytestr.StrCRLF)
	if v, ok := c.AuthHeader(); ok {
		b.WriteString(consts.HeaderProxyAuthorization + ": " + v)
		b.Write(bytestr.StrCRLF)
	}
	b.Write(bytestr.StrCRLF)
	if _, err := conn.Write([]byte(b.String())); err != nil {
		return err
	}

	// 逐字节读取，避免吞掉隧道内的后续数据
	raw, err := ext.ReadRawHeaders(bufio.NewReaderSize(oneByteReader{conn}, 16))
	if err != nil {
		return err
	}
	statusLine, _, _ := strings.Cut(string(raw), string(bytestr.StrLF))
	code, err := ext.ParseStatusCode(strings.TrimRight(statusLine, "\r"))
	if err != nil {
		return err
	}
	if code != consts.StatusOK {
		return fmt.Errorf("代理服务器返回错误状态: %d", code)
	}
	return nil
}

type forwardDialer struct {
	d       network.Dialer
	timeout time.Duration
}

func (f forwardDialer) Dial(network, addr string) (net.Conn, error) {
	return f.d.DialTimeout(network, addr, f.timeout, nil)
}

type oneByteReader struct {
	conn net.Conn
}

func (r oneByteReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	return r.conn.Read(p[:1])
}
