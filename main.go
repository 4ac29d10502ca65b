package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"strconv"

	"arcadechess/internal/game"
	"arcadechess/internal/handlers"
	"arcadechess/internal/logging"
	"arcadechess/internal/storage"
	"arcadechess/internal/templates"
)

func getenv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func main() {
	addr := flag.String("addr", getenv("ARCADECHESS_ADDR", ":8080"), "listen address")
	dsn := flag.String("dsn", getenv("ARCADECHESS_DSN", ""), "postgres DSN; empty keeps games in memory")
	debug := flag.Bool("debug", getenvBool("ARCADECHESS_DEBUG", false), "enable debug logging")
	flag.Parse()
	logging.Debug = *debug

	templates.SetCommit(commit)

	var store *storage.Store
	if *dsn != "" {
		db, err := storage.New(*dsn, *debug)
		if err != nil {
			log.Fatalf("open database: %v", err)
		}
		store = storage.NewStore(db)
		log.Printf("Persisting games to postgres")
	}

	// Initialize game hub
	hub := game.NewHub(store)

	// Initialize HTTP handlers
	h := handlers.NewHandler(hub)

	// Register routes
	http.HandleFunc("/new", h.HandleNew)
	http.HandleFunc("/sse/", h.HandleSSE)
	http.HandleFunc("/move/", h.HandleMove)
	http.HandleFunc("/legal/", h.HandleLegal)
	http.HandleFunc("/state/", h.HandleState)
	http.HandleFunc("/react/", h.HandleReact)
	http.HandleFunc("/reset/", h.HandleReset)
	http.HandleFunc("/release/", h.HandleRelease)
	http.HandleFunc("/stats", h.HandleStats)
	http.HandleFunc("/version", handleVersion)
	http.HandleFunc("/", h.HandlePage)

	log.Printf("Arcade Chess %s (%s) listening on %s", commit, buildDate, *addr)
	log.Fatal(http.ListenAndServe(*addr, nil))
}
