package protocol

import (
	"net/url"
	"strings"

	"github.com/favbox/courier/internal/bytesconv"
)

type argsKV struct {
	key   string
	value string
}

// Args 是有序的键值参数集合，用于查询参数、表单参数和 Cookie 行。
//
// 同名参数以最后一次 Set 为准，Add 则追加同名参数。
type Args struct {
	args []argsKV
}

// Set 设置参数，替换所有同名参数中的第一个并删除其余。
func (a *Args) Set(key, value string) {
	a.args = setArg(a.args, key, value)
}

// Add 追加参数，允许同名。
func (a *Args) Add(key, value string) {
	a.args = append(a.args, argsKV{key: key, value: value})
}

// SetAll 按映射的字典序设置参数。
func (a *Args) SetAll(m map[string]string) {
	for _, k := range sortedKeys(m) {
		a.Set(k, m[k])
	}
}

// Peek 返回参数的值，不存在时返回空字符串。
func (a *Args) Peek(key string) string {
	v, _ := a.PeekExists(key)
	return v
}

// PeekExists 返回参数的值以及是否存在。
func (a *Args) PeekExists(key string) (string, bool) {
	return peekArgStr(a.args, key)
}

// Has 报告参数是否存在。
func (a *Args) Has(key string) bool {
	_, ok := a.PeekExists(key)
	return ok
}

// Del 删除所有同名参数。
func (a *Args) Del(key string) {
	a.args = delAllArgs(a.args, key)
}

// Len 返回参数个数。
func (a *Args) Len() int {
	return len(a.args)
}

// Reset 清空参数。
func (a *Args) Reset() {
	a.args = a.args[:0]
}

// VisitAll 按顺序访问每个参数。
func (a *Args) VisitAll(f func(key, value string)) {
	for _, kv := range a.args {
		f(kv.key, kv.value)
	}
}

// Map 返回参数的映射副本，同名参数取最后一个。
func (a *Args) Map() map[string]string {
	m := make(map[string]string, len(a.args))
	for _, kv := range a.args {
		m[kv.key] = kv.value
	}
	return m
}

// CopyTo 将参数复制到 dst。
func (a *Args) CopyTo(dst *Args) {
	dst.args = append(dst.args[:0], a.args...)
}

// AppendBytes 附加转义后的 "k1=v1&k2=v2" 形式查询字符串到 dst 并返回。
func (a *Args) AppendBytes(dst []byte) []byte {
	for i, kv := range a.args {
		if i > 0 {
			dst = append(dst, '&')
		}
		dst = bytesconv.AppendQuotedArg(dst, bytesconv.S2b(kv.key))
		dst = append(dst, '=')
		dst = bytesconv.AppendQuotedArg(dst, bytesconv.S2b(kv.value))
	}
	return dst
}

// String 返回查询字符串。
func (a *Args) String() string {
	return string(a.AppendBytes(nil))
}

// Parse 解析 "k1=v1&k2=v2" 形式的查询字符串并追加参数。
// 无法反转义的片段原样保留。
func (a *Args) Parse(query string) {
	for query != "" {
		var seg string
		seg, query, _ = strings.Cut(query, "&")
		if seg == "" {
			continue
		}
		k, v, _ := strings.Cut(seg, "=")
		a.Add(unescapeArg(k), unescapeArg(v))
	}
}

func unescapeArg(s string) string {
	if u, err := url.QueryUnescape(s); err == nil {
		return u
	}
	return s
}

func setArg(h []argsKV, key, value string) []argsKV {
	for i := range h {
		if h[i].key == key {
			h[i].value = value
			return append(h[:i+1], delAllArgs(h[i+1:], key)...)
		}
	}
	return append(h, argsKV{key: key, value: value})
}

func peekArgStr(h []argsKV, key string) (string, bool) {
	for i := range h {
		if h[i].key == key {
			return h[i].value, true
		}
	}
	return "", false
}

func delAllArgs(h []argsKV, key string) []argsKV {
	for i, n := 0, len(h); i < n; i++ {
		if h[i].key == key {
			h = append(h[:i], h[i+1:]...)
			i--
			n--
		}
	}
	return h
}
