package main

import (
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/hailam/chessrules/internal/server"
	"github.com/hailam/chessrules/internal/storage"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	dbDir := flag.String("db", "", "position store directory (default: per-user data directory)")
	memDB := flag.Bool("memdb", false, "keep stored positions in memory only")
	noStore := flag.Bool("nostore", false, "disable the /api/positions endpoints")
	workers := flag.Int("workers", 0, "goroutines per perft request (0 = GOMAXPROCS)")
	flag.Parse()

	cfg := server.Config{
		AccessLog:    os.Stdout,
		PerftWorkers: *workers,
	}

	if !*noStore {
		var (
			store *storage.Storage
			err   error
		)
		switch {
		case *memDB:
			store, err = storage.OpenInMemory()
		case *dbDir != "":
			store, err = storage.Open(*dbDir)
		default:
			store, err = storage.NewStorage()
		}
		if err != nil {
			log.Fatalf("Failed to open position store: %v", err)
		}
		defer store.Close()
		cfg.Store = store
	}

	log.Printf("listening on %s", *addr)
	if err := http.ListenAndServe(*addr, server.New(cfg)); err != nil {
		log.Fatal(err)
	}
}
