package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"lead-radar/radar"

	"github.com/joho/godotenv"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	godotenv.Load()

	var configPath string
	var dbPath string
	var listenAddr string
	var debug bool
	var ingestPath string
	var district string
	var center string
	var namesPath string
	var batch bool

	flag.StringVar(&configPath, "config", "", "YAML config file path.")
	flag.StringVar(&dbPath, "db", "lead-radar.db", "SQLite database path.")
	flag.StringVar(&listenAddr, "addr", ":8080", "HTTP listen address.")
	flag.BoolVar(&debug, "debug", false, "Enable debug logs.")
	flag.StringVar(&ingestPath, "ingest", "", "Ingest one chat export file and exit (needs -district and -center).")
	flag.StringVar(&district, "district", "", "District for -ingest.")
	flag.StringVar(&center, "center", "", "Center for -ingest.")
	flag.StringVar(&namesPath, "names", "", "Import a phone/name CSV and exit.")
	flag.BoolVar(&batch, "batch", false, "Run configured batch inputs once and exit.")
	flag.Parse()

	visited := map[string]bool{}
	flag.CommandLine.Visit(func(f *flag.Flag) {
		visited[f.Name] = true
	})

	// Base config from file (optional); env fills fields the file left
	// empty, and visited CLI flags override both.
	cfg := &radar.FileConfig{}
	if configPath != "" {
		loaded, err := radar.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	}
	if v := os.Getenv("LEAD_RADAR_DB"); v != "" && cfg.DB == "" {
		cfg.DB = v
	}
	if v := os.Getenv("LEAD_RADAR_ADDR"); v != "" && cfg.ListenAddr == "" {
		cfg.ListenAddr = v
	}
	if visited["db"] {
		cfg.DB = dbPath
	}
	if visited["addr"] {
		cfg.ListenAddr = listenAddr
	}
	if visited["debug"] {
		cfg.Debug = debug
	}
	cfg.ApplyDefaults()

	store, err := radar.Open(cfg.DB)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer store.Close()

	pipeline := radar.NewPipeline(store, cfg.Debug)

	switch {
	case namesPath != "":
		f, err := os.Open(namesPath)
		if err != nil {
			log.Fatalf("open names csv: %v", err)
		}
		defer f.Close()
		count, err := radar.ImportNames(store, f)
		if err != nil {
			log.Fatalf("import names: %v", err)
		}
		fmt.Printf("mapped %d phone numbers to names\n", count)

	case ingestPath != "":
		loc := radar.Location{District: strings.TrimSpace(district), Center: strings.TrimSpace(center)}
		if err := cfg.ValidateLocation(loc); err != nil {
			log.Fatalf("bad location: %v", err)
		}
		count, err := pipeline.IngestFile(ingestPath, loc)
		if err != nil {
			log.Fatalf("ingest: %v", err)
		}
		fmt.Println(radar.IngestStatus(count))

	case batch:
		inputs := make([]radar.InputSpec, 0, len(cfg.Inputs))
		for _, in := range cfg.Inputs {
			loc := radar.Location{District: in.District, Center: in.Center}
			if err := cfg.ValidateLocation(loc); err != nil {
				log.Fatalf("bad input location for glob %q: %v", in.Glob, err)
			}
			inputs = append(inputs, radar.InputSpec{Glob: in.Glob, Location: loc, ArchiveDir: in.ArchiveDir})
		}
		if len(inputs) == 0 {
			fmt.Fprintln(os.Stderr, "no batch inputs configured (config.yaml inputs[])")
			os.Exit(2)
		}
		stats, err := pipeline.RunBatch(inputs)
		if err != nil {
			log.Fatalf("batch: %v", err)
		}
		fmt.Printf("files: %d seen, %d ingested, %d skipped, %d archived; %d new leads\n",
			stats.FilesSeen, stats.FilesIngested, stats.FilesSkipped, stats.FilesArchived, stats.LeadsNew)

	default:
		srv := radar.NewServer(cfg, store, pipeline)
		log.Printf("lead-radar listening on %s (db=%s)", cfg.ListenAddr, cfg.DB)
		if err := http.ListenAndServe(cfg.ListenAddr, srv.Router()); err != nil {
			log.Fatalf("serve: %v", err)
		}
	}
}
