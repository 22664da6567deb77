// Package logger 初始化全局zerolog日志
//
// 使用方式：
//
//	logger.Init(cfg.Log.Level, cfg.Log.Format)
//	log.Info().Str("addr", addr).Msg("服务启动")
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init 设置全局日志级别与输出格式
// format=console 时输出彩色可读日志（开发环境），否则输出JSON（便于采集）
func Init(level, format string) {
	InitWithWriter(level, format, os.Stderr)
}

// InitWithWriter 同Init，可指定输出目标（测试中使用）
func InitWithWriter(level, format string, w io.Writer) {
	zerolog.TimeFieldFormat = time.RFC3339

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	if format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "2006/01/02 15:04:05"}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}
