// Command mathexprd serves the expression evaluator over HTTP.
package main

import (
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/exprlang/mathexpr/internal/server"
)

func main() {
	log.SetFlags(0)
	port := 8000
	if s := os.Getenv("PORT"); s != "" {
		p, err := strconv.Atoi(s)
		if err != nil {
			log.Fatalf("invalid PORT %q", s)
		}
		port = p
	}
	flag.IntVar(&port, "port", port, "port to listen on")
	flag.Parse()

	s := server.New(port)
	done := make(chan error, 1)
	go func() {
		done <- s.Start()
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-done:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	case <-sig:
		if err := s.Stop(); err != nil {
			log.Fatal(err)
		}
	}
}
