package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/barrelsplit/barrelsplit"
	"github.com/barrelsplit/barrelsplit/internal/config"
	"github.com/barrelsplit/barrelsplit/internal/fs"
	"github.com/barrelsplit/barrelsplit/internal/logger"
)

const helpText = `
Usage:
  barrelsplit [options] [files or directories...]

Options:
  --config=...     Path to a JSON configuration file (see GLOSSARY in the
                    project's specification for the shape of "patterns",
                    "aliases", "symlinks" and the two diagnostic modes)
  --write           Write rewritten output back to each input file instead
                    of printing it to stdout
  --color=...       Force use of color terminal escapes (true or false)
  --log-level=...   info, warning, error, or silent

With no file or directory arguments, barrelsplit walks the current
directory for .js/.jsx/.ts/.tsx/.mjs/.cjs files.
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(osArgs []string) int {
	configPath := ""
	write := false
	colorOption := logger.ColorIfTerminal
	logLevel := logger.LevelInfo
	var paths []string

	for _, arg := range osArgs {
		switch {
		case arg == "-h" || arg == "-help" || arg == "--help":
			fmt.Fprintf(os.Stderr, "%s\n", helpText)
			return 0
		case strings.HasPrefix(arg, "--config="):
			configPath = arg[len("--config="):]
		case arg == "--write":
			write = true
		case arg == "--color=true":
			colorOption = logger.ColorAlways
		case arg == "--color=false":
			colorOption = logger.ColorNever
		case strings.HasPrefix(arg, "--log-level="):
			switch arg[len("--log-level="):] {
			case "info":
				logLevel = logger.LevelInfo
			case "warning":
				logLevel = logger.LevelWarning
			case "error":
				logLevel = logger.LevelError
			case "silent":
				logLevel = logger.LevelSilent
			}
		case strings.HasPrefix(arg, "-"):
			fmt.Fprintf(os.Stderr, "Unknown argument: %s\n", arg)
			return 1
		default:
			paths = append(paths, arg)
		}
	}

	raw, err := loadConfig(configPath)
	if err != nil {
		logger.PrintErrorToStderr(osArgs, err.Error())
		return 1
	}

	fileSystem := fs.RealFS()
	plugin, err := barrelsplit.NewPlugin(raw, fileSystem)
	if err != nil {
		logger.PrintErrorToStderr(osArgs, fmt.Sprintf("Invalid configuration: %s", err.Error()))
		return 1
	}

	files, err := discoverFiles(paths)
	if err != nil {
		logger.PrintErrorToStderr(osArgs, err.Error())
		return 1
	}

	log := logger.NewStderrLog(logger.StderrOptions{IncludeSource: true, Color: colorOption, LogLevel: logLevel})

	for _, path := range files {
		abs, ok := fileSystem.Abs(path)
		if !ok {
			logger.PrintErrorToStderr(osArgs, fmt.Sprintf("Could not resolve path: %s", path))
			continue
		}

		deferLog := logger.NewDeferLog()
		file := plugin.ParseAndTransform(deferLog, abs)
		for _, msg := range deferLog.Done() {
			log.AddMsg(msg)
		}
		if file == nil {
			continue
		}

		output := barrelsplit.Print(file)
		if write {
			if err := ioutil.WriteFile(path, []byte(output), 0644); err != nil {
				logger.PrintErrorToStderr(osArgs, fmt.Sprintf("Could not write %s: %s", path, err.Error()))
			}
		} else {
			fmt.Fprint(os.Stdout, output)
		}
	}

	hasErrors := log.HasErrors()
	log.Done()
	if hasErrors {
		return 1
	}
	return 0
}

// loadConfig reads and deserialises the plugin configuration at path, or
// returns the zero Raw (no patterns, everything defaulted) when path is
// empty — mirroring the host contract's "patterns may be empty".
func loadConfig(path string) (config.Raw, error) {
	var raw config.Raw
	if path == "" {
		return raw, nil
	}
	contents, err := ioutil.ReadFile(path)
	if err != nil {
		return raw, fmt.Errorf("could not read config file %q: %w", path, err)
	}
	if err := json.Unmarshal(contents, &raw); err != nil {
		return raw, fmt.Errorf("could not parse config file %q: %w", path, err)
	}
	return raw, nil
}

var recognisedExtensions = map[string]bool{
	".js": true, ".jsx": true, ".ts": true, ".tsx": true, ".mjs": true, ".cjs": true,
}

// discoverFiles expands directory arguments into the source files they
// contain and passes file arguments through unchanged. With no arguments
// at all it walks the current directory.
func discoverFiles(paths []string) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("could not stat %q: %w", path, err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		err = filepath.Walk(path, func(walked string, entry os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if entry.IsDir() {
				if entry.Name() == "node_modules" || strings.HasPrefix(entry.Name(), ".") && walked != path {
					return filepath.SkipDir
				}
				return nil
			}
			if recognisedExtensions[filepath.Ext(walked)] {
				files = append(files, walked)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}
