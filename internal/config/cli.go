package config

import (
	"github.com/Alia5/offsetgen/internal/cmd"

	"github.com/alecthomas/kong"
)

// Log groups the logging flags shared by every command.
type Log struct {
	Level     string `help:"Log level" default:"info" enum:"trace,debug,info,warn,error" env:"OFFSETGEN_LOG_LEVEL"`
	File      string `help:"Mirror log output to this file" env:"OFFSETGEN_LOG_FILE"`
	MatchFile string `help:"Write every recognized namespace and offset to this file (trace level prints them to stdout)" env:"OFFSETGEN_LOG_MATCH_FILE"`
}

// CLI is the root command tree parsed by kong.
type CLI struct {
	ConfigFile string           `name:"config" help:"Configuration file (JSON, YAML or TOML)" type:"path" env:"OFFSETGEN_CONFIG"`
	Log        Log              `embed:"" prefix:"log."`
	Version    kong.VersionFlag `help:"Print version and exit"`

	Generate cmd.Generate      `cmd:"" default:"withargs" help:"Scan headers and write the snapshot, struct header and assignment source"`
	Scan     cmd.Scan          `cmd:"" help:"Scan headers and print the offset table"`
	Assign   cmd.Assign        `cmd:"" help:"Regenerate the assignment source from an existing JSON snapshot"`
	Config   cmd.ConfigCommand `cmd:"" help:"Configuration helpers"`
}
