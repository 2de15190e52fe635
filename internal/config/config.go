// Package config reads service configuration from the environment.
package config

import "os"

type Config struct {
	HTTPAddr  string
	MongoURI  string
	MongoDB   string
	RedisAddr string
}

func Load() Config {
	return Config{
		HTTPAddr:  getenv("HTTP_ADDR", ":5000"),
		MongoURI:  getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:   getenv("MONGO_DB", "afterSchoolClasses"),
		RedisAddr: getenv("REDIS_ADDR", "localhost:6379"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
