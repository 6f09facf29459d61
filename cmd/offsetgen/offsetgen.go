package main

import (
	"os"
	"strings"

	"github.com/Alia5/offsetgen/internal/codegen/common"
	"github.com/Alia5/offsetgen/internal/config"
	"github.com/Alia5/offsetgen/internal/configpaths"
	"github.com/Alia5/offsetgen/internal/log"
	"github.com/Alia5/offsetgen/internal/util"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"
)

func main() {

	userCfg := findUserConfig(os.Args[1:])
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userCfg)

	version, err := common.GetVersion()
	if err != nil {
		version = common.Version
	}

	var cli config.CLI
	ctx := kong.Parse(&cli,
		kong.Name("offsetgen"),
		kong.Description("Regenerate offsets.json, offsets.hpp and set_offsets.cpp from dumped offset headers"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
		// Load configuration from JSON/YAML/TOML in priority order; flags/env override config values.
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	logger, closeFiles, err := log.SetupLogger(cli.Log.Level, cli.Log.File)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		os.Exit(2)
	}

	matchLogger, matchFile, err := log.SetupMatchLogger(cli.Log.Level, cli.Log.MatchFile)
	if err != nil {
		logger.Error("failed to open match log file", "file", cli.Log.MatchFile, "error", err)
		matchLogger = log.NewMatch(nil)
	} else if matchFile != nil {
		closeFiles = append(closeFiles, matchFile)
	}

	ctx.Bind(logger)
	ctx.BindTo(matchLogger, (*log.MatchLogger)(nil))

	err = ctx.Run()

	if launchedFromGUI {
		if err != nil {
			logger.Error("offset generation failed", "error", err)
		}
		util.WaitForEnter(os.Stdin, os.Stdout)
	}
	for _, c := range closeFiles {
		_ = c.Close()
	}
	ctx.FatalIfErrorf(err)
}

func findUserConfig(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, "--config=") {
			return a[len("--config="):]
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	if v := os.Getenv("OFFSETGEN_CONFIG"); v != "" {
		return v
	}
	return ""
}
