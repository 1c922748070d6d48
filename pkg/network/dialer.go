package network

import (
	"crypto/tls"
	"net"
	"time"
)

// Dialer 负责建立出站连接。
type Dialer interface {
	// DialTimeout 在 timeout 内连接到 address，tlsConfig 非空时完成 TLS 握手。
	DialTimeout(network, address string, timeout time.Duration, tlsConfig *tls.Config) (net.Conn, error)

	// AddTLS 在已建立的连接上完成 TLS 握手，用于代理隧道。
	AddTLS(conn net.Conn, tlsConfig *tls.Config) (net.Conn, error)
}

// AddTLS 以客户端身份在 conn 上完成 TLS 握手。
func AddTLS(conn net.Conn, tlsConfig *tls.Config) (net.Conn, error) {
	tlsConn := tls.Client(conn, tlsConfig)
	if err := tlsConn.Handshake(); err != nil {
		return nil, err
	}
	return tlsConn, nil
}
