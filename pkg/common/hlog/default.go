package hlog

import (
	"fmt"
	"io"
	"os"

	"github.com/zeromicro/go-zero/core/logx"
)

var logger FullLogger = &defaultLogger{level: LevelInfo}

// SetOutput 设置默认记录器的输出目标。
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// SetLevel 设置默认记录器的级别。
func SetLevel(lv Level) {
	logger.SetLevel(lv)
}

// SetLogger 替换默认记录器。非并发安全，应在初始化阶段调用。
func SetLogger(v FullLogger) {
	logger = v
	sysLogger.logger = v
}

// DefaultLogger 返回当前默认记录器。
func DefaultLogger() FullLogger {
	return logger
}

// defaultLogger 将输出委托给 go-zero logx。
type defaultLogger struct {
	level Level
}

func (ll *defaultLogger) SetOutput(w io.Writer) {
	logx.SetWriter(logx.NewWriter(w))
}

func (ll *defaultLogger) SetLevel(lv Level) {
	ll.level = lv
	switch {
	case lv <= LevelDebug:
		logx.SetLevel(logx.DebugLevel)
	case lv <= LevelNotice:
		logx.SetLevel(logx.InfoLevel)
	default:
		logx.SetLevel(logx.ErrorLevel)
	}
}

func (ll *defaultLogger) logf(lv Level, format *string, v ...any) {
	if ll.level > lv {
		return
	}
	var msg string
	if format != nil {
		msg = lv.toString() + fmt.Sprintf(*format, v...)
	} else {
		msg = lv.toString() + fmt.Sprint(v...)
	}
	switch {
	case lv <= LevelDebug:
		logx.Debug(msg)
	case lv <= LevelNotice:
		logx.Info(msg)
	default:
		// logx 没有 warn 级别，警告与错误同走 error 流，与 SetLevel 的映射一致
		logx.Error(msg)
	}
	if lv == LevelFatal {
		os.Exit(1)
	}
}

func (ll *defaultLogger) Trace(v ...any)  { ll.logf(LevelTrace, nil, v...) }
func (ll *defaultLogger) Debug(v ...any)  { ll.logf(LevelDebug, nil, v...) }
func (ll *defaultLogger) Info(v ...any)   { ll.logf(LevelInfo, nil, v...) }
func (ll *defaultLogger) Notice(v ...any) { ll.logf(LevelNotice, nil, v...) }
func (ll *defaultLogger) Warn(v ...any)   { ll.logf(LevelWarn, nil, v...) }
func (ll *defaultLogger) Error(v ...any)  { ll.logf(LevelError, nil, v...) }
func (ll *defaultLogger) Fatal(v ...any)  { ll.logf(LevelFatal, nil, v...) }

func (ll *defaultLogger) Tracef(format string, v ...any)  { ll.logf(LevelTrace, &format, v...) }
func (ll *defaultLogger) Debugf(format string, v ...any)  { ll.logf(LevelDebug, &format, v...) }
func (ll *defaultLogger) Infof(format string, v ...any)   { ll.logf(LevelInfo, &format, v...) }
func (ll *defaultLogger) Noticef(format string, v ...any) { ll.logf(LevelNotice, &format, v...) }
func (ll *defaultLogger) Warnf(format string, v ...any)   { ll.logf(LevelWarn, &format, v...) }
func (ll *defaultLogger) Errorf(format string, v ...any)  { ll.logf(LevelError, &format, v...) }
func (ll *defaultLogger) Fatalf(format string, v ...any)  { ll.logf(LevelFatal, &format, v...) }

// Tracef 调用默认记录器的 Tracef 方法。
func Tracef(format string, v ...any) { logger.Tracef(format, v...) }

// Debugf 调用默认记录器的 Debugf 方法。
func Debugf(format string, v ...any) { logger.Debugf(format, v...) }

// Infof 调用默认记录器的 Infof 方法。
func Infof(format string, v ...any) { logger.Infof(format, v...) }

// Warnf 调用默认记录器的 Warnf 方法。
func Warnf(format string, v ...any) { logger.Warnf(format, v...) }

// Errorf 调用默认记录器的 Errorf 方法。
func Errorf(format string, v ...any) { logger.Errorf(format, v...) }
