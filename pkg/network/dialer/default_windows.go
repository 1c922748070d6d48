package dialer

import "github.com/favbox/courier/pkg/network/standard"

func init() {
	// windows 下 netpoll 不可用，使用标准拨号器
	defaultDialer = standard.NewDialer()
}
