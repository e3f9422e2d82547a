// Command epiroute validates simulation configurations and exercises the
// partner-selection and migration engines on synthetic populations.
//
//	epiroute validate --config sim.yaml
//	epiroute pair --config sim.yaml --rel TRANSITORY --population 2000 --draws 10000
//	epiroute migrate --config sim.yaml --travelers 10000 --cdf-cache 256
//	epiroute export-torus --size 10 --out local_migration.bin
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
