package utils

import "github.com/favbox/courier/internal/bytesconv"

// CaseInsensitiveCompare 不分大小写，比较两者是否相同。
// 比直接转小写后相比更快。
func CaseInsensitiveCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}

	for i, n := 0, len(a); i < n; i++ {
		if bytesconv.ToLowerTable[a[i]] != bytesconv.ToLowerTable[b[i]] {
			return false
		}
	}
	return true
}

// ContainsFold 报告 s 中是否包含 substr，不分大小写。
func ContainsFold(s, substr string) bool {
	n := len(substr)
	if n == 0 {
		return true
	}
	for i := 0; i+n <= len(s); i++ {
		if CaseInsensitiveCompare(s[i:i+n], substr) {
			return true
		}
	}
	return false
}

// TrimSpace 去除首尾的 ASCII 空白字符（空格、\t、\r、\n、\v、\f）。
func TrimSpace(s string) string {
	for len(s) > 0 && isSpace(s[0]) {
		s = s[1:]
	}
	for len(s) > 0 && isSpace(s[len(s)-1]) {
		s = s[:len(s)-1]
	}
	return s
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\v' || c == '\f'
}
