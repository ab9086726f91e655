package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"

	"cookieserve/api"
	"cookieserve/config"
	"cookieserve/logger"
)

func main() {
	os.Exit(run(os.Stdout))
}

func run(out io.Writer) int {
	log := logger.GetLogger()

	cfg, err := config.Load()
	if err != nil {
		log.Error("Failed to load config", map[string]interface{}{
			"error": err.Error(),
		})
		return 1
	}

	srv := api.NewServer(cfg, log)
	if err := srv.Listen(); err != nil {
		log.Error("Failed to start server", map[string]interface{}{
			"error": err.Error(),
			"addr":  cfg.Addr(),
		})
		return 1
	}

	// Only an operator interrupt stops the server
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	defer signal.Stop(sigChan)

	printBanner(out, cfg)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Serve()
	}()

	select {
	case <-sigChan:
		printFarewell(out)
		if err := srv.Close(); err != nil {
			log.Error("Failed to close server", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return 0
	case err := <-errChan:
		log.Error("Server stopped unexpectedly", map[string]interface{}{
			"error": fmt.Sprint(err),
		})
		srv.Close()
		return 1
	}
}

func printBanner(w io.Writer, cfg *config.Config) {
	fmt.Fprintf(w, "🍪 Cookiebot Test Server running at %s\n", cfg.BaseURL())
	fmt.Fprintf(w, "📄 Test page: %s\n", cfg.TestPageURL())
	fmt.Fprintln(w, "Press Ctrl+C to stop the server")
}

func printFarewell(w io.Writer) {
	fmt.Fprintln(w, "\n👋 Server stopped")
}
