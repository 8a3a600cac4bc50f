// Command ringbench runs synthetic workloads against the ordered map and the
// cache and exposes optional pprof/Prometheus endpoints.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("ringbench failed", "err", err)
		os.Exit(1)
	}
}
