// SPDX-License-Identifier: GPL-3.0-only

package commons

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

var envLoaded = false

// LoadEnvFile loads the file named by --env-file, if any. Variables already
// set in the environment take precedence.
func LoadEnvFile() {
	if envLoaded {
		return
	}
	envLoaded = true
	args := os.Args[1:]
	for i, arg := range args {
		if arg == "--env-file" && i+1 < len(args) {
			envFile := args[i+1]
			fmt.Printf("Loading environment variables from file: %s\n", envFile)
			if err := godotenv.Load(envFile); err != nil {
				fmt.Printf("Failed to load env file: %s\n", err)
			}
			return
		}
	}
}

// GetEnv returns the value of key, or the first default when it is unset
// or empty.
func GetEnv(key string, defaultValue ...string) string {
	LoadEnvFile()
	if v := os.Getenv(key); v != "" {
		return v
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}
