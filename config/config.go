package config

import (
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

var loadOnce sync.Once

// Config reads a key from .env, falling back to the process environment.
func Config(key string) string {
	loadOnce.Do(func() {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("No .env file found, using system environment")
		}
	})
	return os.Getenv(key)
}

// ConfigInt reads an integer key, returning def when unset or malformed.
func ConfigInt(key string, def int) int {
	v := Config(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
