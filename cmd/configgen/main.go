package main

import (
	"flag"
	"log"

	"github.com/danmuck/recstream/internal/config"
)

const defaultPath = "cmd/recdump/config.toml"

func main() {
	output := flag.String("output", "", "output path for config template")
	validate := flag.Bool("validate", false, "validate an existing config file")
	input := flag.String("input", "", "config path for validation (defaults to cmd/recdump/config.toml)")
	force := flag.Bool("force", false, "overwrite existing config file")
	flag.Parse()

	if *validate {
		path := *input
		if path == "" {
			path = defaultPath
		}
		if _, err := config.LoadDumpConfig(path); err != nil {
			log.Fatal(err)
		}
		log.Printf("Validated recdump config at %s", path)
		return
	}

	target := *output
	if target == "" {
		target = defaultPath
	}
	if err := config.WriteTemplate(target, *force); err != nil {
		log.Fatal(err)
	}
	log.Printf("Wrote recdump config template to %s", target)
}
