package logger

import "os"

// noColor follows the NO_COLOR convention (https://no-color.org).
func noColor() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}
