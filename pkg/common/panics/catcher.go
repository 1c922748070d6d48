package panics

import (
	"fmt"
	"runtime/debug"
)

// Try 执行 f 并返回可能的恐慌，未恐慌时返回 nil。
func Try(f func()) (r *Recovered) {
	defer func() {
		if val := recover(); val != nil {
			r = &Recovered{Value: val, Stack: debug.Stack()}
		}
	}()
	f()
	return nil
}

// Recovered 是用 recover() 捕获到的恐慌。
type Recovered struct {
	// 恐慌的原始值
	Value any
	// 从协程恐慌中恢复的格式化堆栈跟踪。
	Stack []byte
}

// String 返回字符串形式的恐慌原始值和堆栈。
func (p *Recovered) String() string {
	return fmt.Sprintf("%v\n\n错误堆栈：\n%s\n", p.Value, p.Stack)
}

// AsError 将恐慌转为错误。
func (p *Recovered) AsError() error {
	if p == nil {
		return nil
	}
	return &ErrRecovered{*p}
}

var _ error = (*ErrRecovered)(nil)

// ErrRecovered 包装 Recovered 为实现 error 的结构体。
type ErrRecovered struct {
	Recovered
}

func (p *ErrRecovered) Error() string {
	return fmt.Sprintf("恐慌: %v", p.Value)
}

func (p *ErrRecovered) Unwrap() error {
	if err, ok := p.Value.(error); ok {
		return err
	}
	return nil
}
