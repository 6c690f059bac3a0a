package main

import "time"

type Config struct {
	BufferSize          int           `env:"BUFFER_SIZE,default=64"`
	DefaultHistoryLimit int           `env:"DEFAULT_HISTORY_LIMIT,default=50"`
	LogLevel            string        `env:"LOG_LEVEL,default=info"`
	BadgerFilepath      string        `env:"BADGER_FILEPATH"`
	StatsInterval       time.Duration `env:"STATS_INTERVAL,default=30s"`
	DebugPort           int           `env:"DEBUG_PORT,default=8081"`
}
