package log

import (
	"log"
	"os"
	"strconv"
)

// DebugLogLevel returns the level of debug logging requested by the user via
// the REGSYNC_DEBUG_LOG environment variable.
// Level is expressed as a number in range [0, 3] where:
// - 0 means no debug log at all;
// - 1 means registry request progress logging to stderr;
// - 2 means 1 + registry client warnings are printed to stderr;
// - 3 means 2 + regsync debug messages and connection logging are printed.
func DebugLogLevel() int {
	debugLogStr := os.Getenv("REGSYNC_DEBUG_LOG")
	if debugLogStr == "" {
		return 0
	}

	debugLogLevel, err := strconv.Atoi(debugLogStr)
	if err != nil {
		log.Printf("Invalid $REGSYNC_DEBUG_LOG: %v\nUse 1 for progress logging, 2 for warnings or 3 for debug and connection logging. Each level also enables previous ones.\n", err)
		return 0
	}

	return debugLogLevel
}
