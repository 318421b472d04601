package main

import (
	"cae/internal/config"
	"cae/internal/logger"
	"cae/internal/runner"
	"cae/pkg/color"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
)

// Main entry point for the interpreter.
func main() {
	options := runner.Runner{}

	flag.BoolVar(&options.Help, "h", false, "Show help")
	flag.BoolVar(&options.Verbose, "v", false, "Verbose mode (debug logs, compiled procedures)")
	flag.BoolVar(&options.NoColor, "n", false, "No color")
	flag.BoolVar(&options.Trace, "t", false, "Trace every frame dispatch (implies debug logs)")
	flag.IntVar(&options.MaxSteps, "s", 0, "Maximum instructions to execute (0 = unlimited)")
	flag.StringVar(&options.ConfigFile, "config", "", "YAML config file")

	flag.Parse()
	args := flag.Args()

	if len(args) > 0 {
		options.SourceFile = args[0]
	}

	if options.ConfigFile != "" {
		cfg, err := config.Load(options.ConfigFile)
		if err != nil {
			logger.Init(options.Verbose, options.NoColor)
			log.Fatal("Invalid config", "file", options.ConfigFile, "error", err)
		}
		options.Merge(cfg)
	}

	logger.Init(options.Verbose, options.NoColor)
	if options.Help {
		fmt.Printf("Usage: %s [options] <file.cae>\n", os.Args[0])
		fmt.Println("Options:")
		flag.PrintDefaults()
		return
	}

	if options.NoColor {
		color.EnableColor(false)
	}

	if options.SourceFile == "" {
		log.Fatal("No input file provided", "help", fmt.Sprintf("%s -h", os.Args[0]))
	}

	if err := options.Run(); err != nil {
		log.Fatal("Run failed", "error", err)
	}
}
