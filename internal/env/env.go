package env

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoadEnv loads the given .env files into the process environment.
// Variables that are already set win over the files, a missing file is not an error.
func LoadEnv(filenames ...string) {
	for _, filename := range filenames {
		if _, err := os.Stat(filename); err != nil {
			continue
		}
		if err := godotenv.Load(filename); err != nil {
			log.Printf("Error loading %s: %v", filename, err)
		}
	}
}

func GetString(key, fallback string) string {
	val, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	return val
}

func GetInt(key string, fallback int) int {
	val, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	valAsInt, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return fallback
	}

	return valAsInt
}

func GetFloat(key string, fallback float64) float64 {
	val, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	valAsFloat, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil {
		return fallback
	}

	return valAsFloat
}

func GetBool(key string, fallback bool) bool {
	val, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	boolVal, err := strconv.ParseBool(strings.TrimSpace(val))
	if err != nil {
		return fallback
	}

	return boolVal
}
