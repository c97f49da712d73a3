package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	j "github.com/goccy/go-json"

	recmap "github.com/reoring/recmap"
	"github.com/reoring/recmap/generate"
	"github.com/reoring/recmap/schema"
	"github.com/reoring/recmap/server"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "serve":
		serveCmd(os.Args[2:])
	case "exec":
		execCmd(os.Args[2:])
	case "validate":
		validateCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "recmap CLI\n\nUsage:\n  recmap serve [-addr :8080] [-registry schemas.yaml]\n  recmap exec -config config.json [-source data.csv] [-registry schemas.yaml]\n  recmap validate -config config.json [-registry schemas.yaml]\n\nEnvironment:\n  GENERATOR_BASE_URL, GENERATOR_API_KEY, GENERATOR_MODEL configure the LLM config generator for serve.")
}

func serveCmd(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	var addr string
	var registryPath string
	fs.StringVar(&addr, "addr", ":8080", "listen address")
	fs.StringVar(&registryPath, "registry", "", "target schema registry yaml (default: built-in catalog)")
	_ = fs.Parse(args)

	reg := loadRegistry(registryPath)

	var gen generate.Generator
	if base := os.Getenv("GENERATOR_BASE_URL"); base != "" {
		model := os.Getenv("GENERATOR_MODEL")
		if model == "" {
			model = "gpt-4o-mini"
		}
		gen = generate.NewClient(base, os.Getenv("GENERATOR_API_KEY"), model, reg)
	} else {
		log.Println("GENERATOR_BASE_URL not set; /api/generate-config will report dependency_unavailable")
	}

	srv := server.New(reg, gen)
	log.Printf("recmap server listening on %s", addr)
	if err := srv.Start(addr); err != nil {
		log.Fatal(err)
	}
}

func execCmd(args []string) {
	fs := flag.NewFlagSet("exec", flag.ExitOnError)
	var configPath, sourcePath, registryPath string
	fs.StringVar(&configPath, "config", "", "mapping configuration json file")
	fs.StringVar(&sourcePath, "source", "", "raw source payload file (omit for dry validate)")
	fs.StringVar(&registryPath, "registry", "", "target schema registry yaml (default: built-in catalog)")
	_ = fs.Parse(args)
	if configPath == "" {
		fs.Usage()
		os.Exit(2)
	}

	raw := ""
	if sourcePath != "" {
		data, err := os.ReadFile(sourcePath)
		if err != nil {
			fatalf("reading source: %v", err)
		}
		raw = string(data)
	}
	runExecute(configPath, raw, registryPath)
}

func validateCmd(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	var configPath, registryPath string
	fs.StringVar(&configPath, "config", "", "mapping configuration json file")
	fs.StringVar(&registryPath, "registry", "", "target schema registry yaml (default: built-in catalog)")
	_ = fs.Parse(args)
	if configPath == "" {
		fs.Usage()
		os.Exit(2)
	}
	runExecute(configPath, "", registryPath)
}

func runExecute(configPath, raw, registryPath string) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		fatalf("reading config: %v", err)
	}
	var candidate any
	if err := j.Unmarshal(data, &candidate); err != nil {
		fatalf("config is not valid json: %v", err)
	}

	res := recmap.Execute(candidate, raw, loadRegistry(registryPath))
	out, err := j.MarshalIndent(res, "", "  ")
	if err != nil {
		fatalf("encoding result: %v", err)
	}
	fmt.Println(string(out))
	if !res.Valid {
		os.Exit(1)
	}
}

func loadRegistry(path string) *schema.Registry {
	if path == "" {
		return schema.DefaultRegistry()
	}
	reg, err := schema.LoadFile(path)
	if err != nil {
		fatalf("loading registry: %v", err)
	}
	return reg
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
