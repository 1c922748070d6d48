package protocol

import (
	"github.com/favbox/courier/internal/bytesconv"
	"github.com/favbox/courier/internal/bytestr"
	errs "github.com/favbox/courier/pkg/common/errors"
	"github.com/favbox/courier/pkg/common/utils"
	"github.com/zeromicro/go-zero/core/jsonx"
)

// Body 是消息正文及其延迟解析的结果。
//
// 解析结果在首次请求时计算并缓存，只有显式 reload 才会重新解析，
// 修改原始正文不会使缓存失效。
type Body struct {
	raw []byte

	parsed    any
	parsedErr error
	hasParsed bool
}

// Set 设置原始正文。
func (b *Body) Set(p []byte) {
	b.raw = append(b.raw[:0], p...)
}

// SetString 设置原始正文。
func (b *Body) SetString(s string) {
	b.raw = append(b.raw[:0], s...)
}

// Append 追加原始正文。
func (b *Body) Append(p []byte) {
	b.raw = append(b.raw, p...)
}

// Write 实现 io.Writer。
func (b *Body) Write(p []byte) (int, error) {
	b.Append(p)
	return len(p), nil
}

// Bytes 返回原始正文。
func (b *Body) Bytes() []byte {
	return b.raw
}

// String 返回原始正文的字符串形式。
func (b *Body) String() string {
	return string(b.raw)
}

// Len 返回原始正文的字节长度。
func (b *Body) Len() int {
	return len(b.raw)
}

// Reset 清空原始正文和解析缓存。
func (b *Body) Reset() {
	b.raw = b.raw[:0]
	b.parsed, b.parsedErr, b.hasParsed = nil, nil, false
}

// IsJSONContentType 报告内容类型是否包含 application/json，不分大小写。
func IsJSONContentType(contentType string) bool {
	return utils.ContainsFold(contentType, bytesconv.B2s(bytestr.JSONContentType))
}

// Parsed 按内容类型返回解析后的正文。
//
// JSON 类型的正文解码为 map[string]any、[]any 等，数字为 json.Number；
// 解码失败返回 BodyParseError，且不缓存为成功。空正文和非 JSON 类型返回原始字符串。
func (b *Body) Parsed(contentType string, reload bool) (any, error) {
	return b.parse(IsJSONContentType(contentType), reload)
}

// ParsedJSON 无视内容类型，强制按 JSON 解析。
func (b *Body) ParsedJSON(reload bool) (any, error) {
	return b.parse(true, reload)
}

func (b *Body) parse(asJSON, reload bool) (any, error) {
	if b.hasParsed && !reload {
		return b.parsed, b.parsedErr
	}
	b.parsed, b.parsedErr, b.hasParsed = b.String(), nil, true
	if asJSON && len(b.raw) > 0 {
		var v any
		if err := jsonx.Unmarshal(b.raw, &v); err != nil {
			b.parsed = nil
			b.parsedErr = errs.Newf(errs.ErrorTypeBodyParse, b.String(), "解析 JSON 正文失败: %v", err)
		} else {
			b.parsed = v
		}
	}
	return b.parsed, b.parsedErr
}

// SetJSON 以 v 的 JSON 编码设置原始正文。
func (b *Body) SetJSON(v any) error {
	p, err := jsonx.Marshal(v)
	if err != nil {
		return errs.New(err, errs.ErrorTypeInvalidArgument, nil)
	}
	b.Set(p)
	return nil
}
