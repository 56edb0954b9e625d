// Package main is the entry point of the TeleinfoBridge daemon.
// It initializes the logger, loads the configuration, constructs the bridge
// components (serial reader, decoder, MQTT publisher, record archive, web
// app) and runs them until interrupted.
package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"TeleinfoBridge/internal/core"
	"TeleinfoBridge/internal/util"
)

// main loads configuration, constructs the system and starts all
// components. The program waits for an interrupt signal and performs
// graceful shutdown.
func main() {
	util.SetupLogger()

	cfgPath := flag.String("c", "configs/config.yml", "path to configuration file")
	flag.Parse()

	log.Printf("[Main] Using config: %s", *cfgPath)

	sys, err := core.NewSystem(*cfgPath)
	if err != nil {
		log.Fatalf("failed to create system: %v", err)
	}

	if err := sys.StartAll(); err != nil {
		log.Fatalf("failed to start system: %v", err)
	}

	// wait for Ctrl+C or SIGTERM
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("[Main] Shutting down bridge...")
	sys.StopAll()
	log.Println("[Main] Bridge stopped cleanly.")
}
