package dialer

import (
	"crypto/tls"
	"net"
	"time"

	"github.com/favbox/courier/pkg/network"
)

// defaultDialer 是进程默认拨号器，按平台在 init 中设置。
var defaultDialer network.Dialer

// SetDialer 替换默认拨号器。
func SetDialer(d network.Dialer) {
	defaultDialer = d
}

// DefaultDialer 返回默认拨号器。
func DefaultDialer() network.Dialer {
	return defaultDialer
}

// DialTimeout 使用默认拨号器建立连接。
func DialTimeout(network, address string, timeout time.Duration, tlsConfig *tls.Config) (net.Conn, error) {
	return defaultDialer.DialTimeout(network, address, timeout, tlsConfig)
}

// AddTLS 使用默认拨号器在 conn 上完成 TLS 握手。
func AddTLS(conn net.Conn, tlsConfig *tls.Config) (net.Conn, error) {
	return defaultDialer.AddTLS(conn, tlsConfig)
}
