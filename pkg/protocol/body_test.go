package protocol

import (
	"encoding/json"
	"errors"
	"testing"

	errs "github.com/favbox/courier/pkg/common/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsJSONContentType(t *testing.T) {
	t.Parallel()

	assert.True(t, IsJSONContentType("application/json"))
	assert.True(t, IsJSONContentType("application/json; charset=utf-8"))
	assert.True(t, IsJSONContentType("Application/JSON"))
	assert.False(t, IsJSONContentType("text/html"))
	assert.False(t, IsJSONContentType(""))
}

func TestBodyParsed(t *testing.T) {
	t.Parallel()

	t.Run("JSON 对象", func(t *testing.T) {
		var b Body
		b.SetString(`{"a":1,"b":["x"]}`)
		v, err := b.Parsed("application/json; charset=utf-8", false)
		require.Nil(t, err)
		assert.Equal(t, map[string]any{"a": json.Number("1"), "b": []any{"x"}}, v)
	})

	t.Run("非 JSON 类型返回原始字符串", func(t *testing.T) {
		var b Body
		b.SetString("<html/>")
		v, err := b.Parsed("text/html", false)
		assert.Nil(t, err)
		assert.Equal(t, "<html/>", v)
	})

	t.Run("空 JSON 正文", func(t *testing.T) {
		var b Body
		v, err := b.Parsed("application/json", false)
		assert.Nil(t, err)
		assert.Equal(t, "", v)
	})

	t.Run("无效 JSON 的错误被缓存", func(t *testing.T) {
		var b Body
		b.SetString("{oops")
		_, err := b.Parsed("application/json", false)
		assert.True(t, errors.Is(err, errs.ErrBodyParse))

		// 未 reload 时再次读取仍返回错误
		v, err := b.Parsed("application/json", false)
		assert.True(t, errors.Is(err, errs.ErrBodyParse))
		assert.Nil(t, v)

		b.SetString(`[1]`)
		v, err = b.Parsed("application/json", true)
		assert.Nil(t, err)
		assert.Equal(t, []any{json.Number("1")}, v)
	})

	t.Run("缓存仅由 reload 失效", func(t *testing.T) {
		var b Body
		b.SetString("first")
		v, _ := b.Parsed("", false)
		assert.Equal(t, "first", v)

		b.SetString("second")
		v, _ = b.Parsed("", false)
		assert.Equal(t, "first", v)
		v, _ = b.Parsed("", true)
		assert.Equal(t, "second", v)
	})

	t.Run("强制 JSON", func(t *testing.T) {
		var b Body
		b.SetString(`{"k":"v"}`)
		v, err := b.ParsedJSON(false)
		assert.Nil(t, err)
		assert.Equal(t, map[string]any{"k": "v"}, v)
	})
}

func TestBodyWrite(t *testing.T) {
	t.Parallel()

	var b Body
	b.Set([]byte("a"))
	b.Append([]byte("b"))
	_, _ = b.Write([]byte("c"))
	assert.Equal(t, "abc", b.String())
	assert.Equal(t, 3, b.Len())

	assert.Nil(t, b.SetJSON([]int{1, 2}))
	assert.Equal(t, "[1,2]", string(b.Bytes()))
	assert.True(t, errors.Is(b.SetJSON(func() {}), errs.ErrInvalidArgument))

	b.Reset()
	assert.Equal(t, 0, b.Len())
}
