package protocol

import (
	"sort"

	"github.com/favbox/courier/internal/bytesconv"
	"github.com/favbox/courier/internal/bytestr"
	errs "github.com/favbox/courier/pkg/common/errors"
)

type headerKV struct {
	// 小写折叠后的键
	key string
	// 首次写入时的原始名称，用于渲染
	name  string
	value string
}

// HeaderBag 是不区分大小写的标头集合，每个名称只对应单个字符串值。
//
// 查找和存储均以小写折叠后的名称为键，渲染时使用首次写入的原始名称。
// 迭代顺序为首次写入顺序。
type HeaderBag struct {
	h []headerKV
}

// Set 设置标头，覆盖同名的已有值。
func (b *HeaderBag) Set(name, value string) {
	key := bytesconv.ToLower(name)
	if kv := b.find(key); kv != nil {
		kv.value = value
		return
	}
	b.h = append(b.h, headerKV{key: key, name: name, value: value})
}

// SetAll 按名称的字典序逐一 Set，同一折叠名称以靠后者为准。
func (b *HeaderBag) SetAll(m map[string]string) {
	for _, k := range sortedKeys(m) {
		b.Set(k, m[k])
	}
}

// Append 将 value 拼接到已有值之后。这是字符串拼接而非多值追加。
func (b *HeaderBag) Append(name, value string) {
	cur, _ := b.Lookup(name)
	b.Set(name, cur+value)
}

// Has 报告标头是否存在。
func (b *HeaderBag) Has(name string) bool {
	return b.find(bytesconv.ToLower(name)) != nil
}

// Get 返回标头的值，不存在时返回空字符串。
func (b *HeaderBag) Get(name string) string {
	v, _ := b.Lookup(name)
	return v
}

// Lookup 返回标头的值以及是否存在。
func (b *HeaderBag) Lookup(name string) (string, bool) {
	if kv := b.find(bytesconv.ToLower(name)); kv != nil {
		return kv.value, true
	}
	return "", false
}

// GetMany 返回一组标头的值，结果以传入的名称为键。
//
// 若有名称不存在，仍返回已找到的部分，同时返回 InvalidArgument 错误，
// 其 Meta 为缺失名称的切片。
func (b *HeaderBag) GetMany(names []string) (map[string]string, error) {
	m := make(map[string]string, len(names))
	var missing []string
	for _, name := range names {
		v, ok := b.Lookup(name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		m[name] = v
	}
	if len(missing) > 0 {
		return m, errs.NewInvalidArgumentf("缺少标头: %v", missing).SetMeta(missing)
	}
	return m, nil
}

// Del 删除标头。
func (b *HeaderBag) Del(name string) {
	key := bytesconv.ToLower(name)
	for i := range b.h {
		if b.h[i].key == key {
			b.h = append(b.h[:i], b.h[i+1:]...)
			return
		}
	}
}

// Names 按写入顺序返回折叠后的标头名称。
func (b *HeaderBag) Names() []string {
	names := make([]string, len(b.h))
	for i := range b.h {
		names[i] = b.h[i].key
	}
	return names
}

// Len 返回标头个数。
func (b *HeaderBag) Len() int {
	return len(b.h)
}

// VisitAll 按写入顺序访问每个标头的原始名称和值。
func (b *HeaderBag) VisitAll(f func(name, value string)) {
	for _, kv := range b.h {
		f(kv.name, kv.value)
	}
}

// RenderLine 返回 "Name: value" 形式的标头行，标头不存在或值为空时 ok 为 false。
func (b *HeaderBag) RenderLine(name string) (line string, ok bool) {
	kv := b.find(bytesconv.ToLower(name))
	if kv == nil || kv.value == "" {
		return "", false
	}
	return string(appendHeaderLine(nil, kv.name, kv.value)), true
}

// RenderLines 返回指定标头的标头行，names 为空时渲染全部标头。无值的标头被跳过。
func (b *HeaderBag) RenderLines(names ...string) []string {
	if len(names) == 0 {
		names = b.Names()
	}
	lines := make([]string, 0, len(names))
	for _, name := range names {
		if line, ok := b.RenderLine(name); ok {
			lines = append(lines, line)
		}
	}
	return lines
}

// AppendBytes 附加所有非空标头的 "Name: value\r\n" 到 dst 并返回。
func (b *HeaderBag) AppendBytes(dst []byte) []byte {
	for _, kv := range b.h {
		if kv.value == "" {
			continue
		}
		dst = appendHeaderLine(dst, kv.name, kv.value)
		dst = append(dst, bytestr.StrCRLF...)
	}
	return dst
}

// Merge 将 src 中的标头逐一 Set 到 b。
func (b *HeaderBag) Merge(src *HeaderBag) {
	for _, kv := range src.h {
		b.Set(kv.name, kv.value)
	}
}

// CopyTo 将标头复制到 dst。
func (b *HeaderBag) CopyTo(dst *HeaderBag) {
	dst.h = append(dst.h[:0], b.h...)
}

// Reset 清空标头。
func (b *HeaderBag) Reset() {
	b.h = b.h[:0]
}

func (b *HeaderBag) find(key string) *headerKV {
	for i := range b.h {
		if b.h[i].key == key {
			return &b.h[i]
		}
	}
	return nil
}

// 附加一个标头行。
// 形如 "key: value"
func appendHeaderLine(dst []byte, key, value string) []byte {
	dst = append(dst, key...)
	dst = append(dst, bytestr.StrColonSpace...)
	return append(dst, value...)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
