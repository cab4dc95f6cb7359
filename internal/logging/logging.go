// Package logging centralizes logrus setup for the simulator, mirroring
// the teacher repo's practice of configuring one package-level formatter
// rather than letting every package call logrus.StandardLogger() raw.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New 创建一个统一格式的logrus实例；模块名由WithComponent以component字段附加。
//
// 功能：统一日志格式，便于区分准入、动力学、路口调度、Tick控制器等
// 各个组件打出的日志。
// 参数：level-日志级别字符串（"debug"|"info"|"warn"|"error"），解析失败时
// 回退到info。
func New(level string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	l.SetLevel(parsed)
	return l
}

// WithComponent 返回一个带有component字段的子Entry，供各组件在内部持有。
func WithComponent(l *logrus.Logger, component string) *logrus.Entry {
	return l.WithField("component", component)
}
