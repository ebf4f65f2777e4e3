package main

import (
	"os"
	"strconv"
)

type Config struct {
	ChatAddr       string
	StaticAddr     string
	StaticDir      string
	MetricsAddr    string
	MaxMessageSize int64
}

func LoadConfig() *Config {
	return &Config{
		ChatAddr:       envStr("PINCHAT_CHAT_ADDR", ":6789"),
		StaticAddr:     envStr("PINCHAT_STATIC_ADDR", ":8000"),
		StaticDir:      envStr("PINCHAT_STATIC_DIR", ""),
		MetricsAddr:    envStr("PINCHAT_METRICS_ADDR", ""),
		MaxMessageSize: int64(envInt("PINCHAT_MAX_MESSAGE_SIZE", 65536)),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
