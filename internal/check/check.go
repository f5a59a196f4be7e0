// Package check implements --check: it reports which codecs this build and
// host can run.
package check

import (
	"github.com/arloliu/codecbench/compress"
)

// Logger is the subset of the CLI logger RunCheck needs.
type Logger interface {
	Info(string, ...any)
	Success(string, ...any)
	Warn(string, ...any)
	Error(string, ...any)
}

// RunCheck logs one line per probed codec and reports whether every default
// codec is available.
func RunCheck(env compress.Environment, log Logger) bool {
	log.Info("=== Codec Check ===")

	for _, d := range env.Descriptors() {
		if d.Available {
			log.Success("%-5s %-20s %s (%s)", d.Name, d.Backend, d.Location, d.Options)
			continue
		}
		log.Warn("%-5s unavailable: %s", d.Name, d.Reason)
	}

	ok := true
	for _, name := range compress.DefaultNames {
		if !env.Available(name) {
			log.Error("default codec %s is unavailable", name)
			ok = false
		}
	}
	if ok {
		log.Success("all default codecs available")
	}

	return ok
}
