package main

import (
	"flag"
	"log"

	"github.com/danmuck/libctl/internal/config"
)

func main() {
	kind := flag.String("kind", "config", "template kind: config|manifest")
	output := flag.String("output", "", "output path for the template")
	validate := flag.Bool("validate", false, "validate an existing config file")
	input := flag.String("input", "libctl.toml", "config path for validation")
	force := flag.Bool("force", false, "overwrite an existing file")
	flag.Parse()

	if *validate {
		cfg, err := config.Load(*input)
		if err != nil {
			log.Fatal(err)
		}
		if err := config.Validate(cfg); err != nil {
			log.Fatal(err)
		}
		log.Printf("Validated config at %s", *input)
		return
	}

	target := *output
	if target == "" {
		switch *kind {
		case "config":
			target = "libctl.toml"
		case "manifest":
			target = "manifest.yaml"
		default:
			log.Fatalf("unknown kind: %s", *kind)
		}
	}

	if err := config.WriteTemplate(target, *kind, *force); err != nil {
		log.Fatal(err)
	}
	log.Printf("Wrote %s template to %s", *kind, target)
}
