//go:build !windows

package netpoll

import (
	"errors"
	"io"
	"testing"

	"github.com/cloudwego/netpoll"
	errs "github.com/favbox/courier/pkg/common/errors"
	"github.com/stretchr/testify/assert"
	"golang.org/x/sys/unix"
)

func TestNormalizeErr(t *testing.T) {
	t.Parallel()

	assert.Nil(t, normalizeErr(nil))
	assert.Equal(t, io.EOF, normalizeErr(netpoll.ErrEOF))
	assert.Equal(t, errs.ErrConnectionClosed, normalizeErr(netpoll.ErrConnClosed))
	assert.Equal(t, errs.ErrConnectionClosed, normalizeErr(unix.EPIPE))
	assert.Equal(t, errs.ErrConnectionClosed, normalizeErr(unix.ECONNRESET))

	other := errors.New("其他错误")
	assert.Equal(t, other, normalizeErr(other))
}
