// Command phonetool parses, formats and validates phone numbers from the shell.
package main

import (
	"fmt"
	"os"

	"telinput/platform/config"
	"telinput/platform/logger"
	"telinput/platform/phone"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	log := logger.NewWithWriter(cfg.Env, os.Stderr)
	loader := phone.NewLoader(phone.DefaultLoad, phone.WithLogger(log))
	loader.Load()

	if err := newRootCmd(loader, cfg).Execute(); err != nil {
		os.Exit(1)
	}
}
