package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Settings carries every runtime knob the server reads from the process
// environment. Absent or unparsable variables fall back to the development
// defaults baked into Load.
type Settings struct {
	Port        string
	DatabaseURL string

	// AcceptedOrigins feeds the CORS allowlist; ACCEPTED_ORIGINS is a
	// comma-separated list, defaulting to the wildcard.
	AcceptedOrigins []string

	TokenSecret string
	TokenTTL    time.Duration

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Load reads the process environment into Settings
func Load() Settings {
	env := environAsMap()

	return Settings{
		Port:            getString(env, "PORT", "8080"),
		DatabaseURL:     getString(env, "DATABASE_URL", ""),
		AcceptedOrigins: strings.Split(getString(env, "ACCEPTED_ORIGINS", "*"), ","),
		TokenSecret:     getString(env, "TOKEN_SECRET", "dev-secret-do-not-deploy"),
		TokenTTL:        time.Duration(getInt(env, "TOKEN_TTL_MINUTES", 24*60)) * time.Minute,
		ReadTimeout:     time.Duration(getInt(env, "READ_TIMEOUT_SECONDS", 180)) * time.Second,
		WriteTimeout:    time.Duration(getInt(env, "WRITE_TIMEOUT_SECONDS", 180)) * time.Second,
		IdleTimeout:     time.Duration(getInt(env, "IDLE_TIMEOUT_SECONDS", 180)) * time.Second,
	}
}

func environAsMap() map[string]string {
	environ := os.Environ()
	env := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry != "" {
			key, value := split(entry)
			env[key] = value
		}
	}
	return env
}

// assumes entry is not the empty string
func split(entry string) (key, value string) {
	parts := strings.SplitN(entry, "=", 2)
	if len(parts) < 2 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

func getString(env map[string]string, key string, defaultValue string) string {
	if val, ok := env[key]; ok {
		return val
	}
	return defaultValue
}

func getInt(env map[string]string, key string, defaultValue int) int {
	s, ok := env[key]
	if !ok {
		return defaultValue
	}
	asInt, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}
	return asInt
}
