package main

import (
	"flag"
	"log"

	"news_archiver/internal/app"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()

	if err := app.Run(*configPath); err != nil {
		log.Fatalf("news_archiver: %v", err)
	}
}
