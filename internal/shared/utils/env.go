package utils

import "os"

// GetEnv returns the value of an environment variable or a default if unset.
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
