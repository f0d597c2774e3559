// FILE: env.go
// Package main – Environment helpers and .env loading.
//
// Small helpers to read environment variables with sane defaults (strings,
// ints, floats), plus loadEngineEnv which hydrates the process environment
// from ./.env via godotenv without overriding variables already exported.
// Every setting has a built-in default and flags override the env values,
// so a missing .env is fine.

package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func getEnvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// loadEngineEnv hydrates the process env from .env if one exists.
func loadEngineEnv() {
	_ = godotenv.Load()
}
