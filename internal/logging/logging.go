package logging

import "log"

// Debug controls whether debug logs are printed.
var Debug bool

// Debugf logs a formatted debug message when Debug is enabled.
func Debugf(format string, v ...any) {
	if Debug {
		log.Printf("DEBUG: "+format, v...)
	}
}

// Warnf logs a failure the server recovers from, such as a persistence error
// that leaves the in-memory game intact.
func Warnf(format string, v ...any) {
	log.Printf("WARN: "+format, v...)
}
