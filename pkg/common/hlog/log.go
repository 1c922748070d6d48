package hlog

import (
	"fmt"
	"io"
)

// FormatLogger 是格式化日志的记录器接口。
type FormatLogger interface {
	Tracef(format string, v ...any)
	Debugf(format string, v ...any)
	Infof(format string, v ...any)
	Noticef(format string, v ...any)
	Warnf(format string, v ...any)
	Errorf(format string, v ...any)
	Fatalf(format string, v ...any)
}

// Logger 是非格式化日志的记录器接口。
type Logger interface {
	Trace(v ...any)
	Debug(v ...any)
	Info(v ...any)
	Notice(v ...any)
	Warn(v ...any)
	Error(v ...any)
	Fatal(v ...any)
}

// Control 控制日志的输出和级别。
type Control interface {
	SetLevel(Level)
	SetOutput(io.Writer)
}

// FullLogger 是 Logger、FormatLogger 和 Control 的组合。
type FullLogger interface {
	Logger
	FormatLogger
	Control
}

// Level 定义日志消息的优先级。
// 当日志记录器配置了一个级别，任何低于该级别的消息都不会被输出。
type Level int

// 日志级别。
const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelNotice
	LevelWarn
	LevelError
	LevelFatal
)

var strs = []string{
	"[Trace] ",
	"[Debug] ",
	"[Info] ",
	"[Notice] ",
	"[Warn] ",
	"[Error] ",
	"[Fatal] ",
}

func (lv Level) toString() string {
	if lv >= LevelTrace && lv <= LevelFatal {
		return strs[lv]
	}
	return fmt.Sprintf("[?%d] ", lv)
}
