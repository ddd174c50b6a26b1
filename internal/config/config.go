package config

import (
	"os"
	"strings"
)

type Config struct {
	HTTPAddr       string
	AllowedOrigins []string
}

func getenvStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func Load() Config {
	return Config{
		HTTPAddr:       getenvStr("HTTP_ADDR", ":8080"),
		AllowedOrigins: splitCSV(getenvStr("ALLOWED_ORIGINS", "*")),
	}
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
