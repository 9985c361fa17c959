package config

import "os"

func IsDebug() bool {
	return os.Getenv("ASSISTANT_DEBUG") == "1"
}
