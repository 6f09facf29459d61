package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"unicode"

	"github.com/Alia5/offsetgen/internal/configpaths"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"
)

// ConfigCommand groups config-related subcommands.
type ConfigCommand struct {
	Init ConfigInit `cmd:"" help:"Generate a configuration template"`
}

// ConfigInit scaffolds a configuration file for a specific command.
//
// JSON and TOML files are flat and feed every command. The flags below stay
// clear of the command flag names so a loaded template never feeds them.
type ConfigInit struct {
	Command string `arg:"" name:"command" help:"Command to generate config for" enum:"generate,scan,assign"`
	Path    string `arg:"" optional:"" help:"Destination file path (defaults to offsetgen.<format> in the current directory)"`
	As      string `name:"as" help:"Template format" enum:"json,yaml,toml" default:"json"`
	Force   bool   `help:"Overwrite if the file already exists"`
}

// Run writes a configuration template built by reflecting over the command's
// kong tags, keyed the way the matching loader resolves flags:
// camelCase for JSON, kebab-case for TOML, kebab-case under the command
// name for YAML.
func (c *ConfigInit) Run() error {
	format := normalizeFormat(c.As)
	if format == "" {
		return fmt.Errorf("unsupported format: %s", c.As)
	}

	var t reflect.Type
	switch c.Command {
	case "generate":
		t = reflect.TypeOf(Generate{})
	case "scan":
		t = reflect.TypeOf(Scan{})
	case "assign":
		t = reflect.TypeOf(Assign{})
	default:
		return errors.New("unknown command; expected 'generate', 'scan' or 'assign'")
	}

	dest := c.Path
	if dest == "" {
		// picked up automatically from the working directory
		dest = "offsetgen." + format
	}

	if !c.Force {
		if _, err := os.Stat(dest); err == nil {
			return errors.New("destination exists; use --force to overwrite")
		}
	}
	if err := configpaths.EnsureDir(dest); err != nil {
		return err
	}

	var data []byte
	var err error
	switch format {
	case "json":
		data, err = json.MarshalIndent(buildMapFromStruct(t, configKey), "", "  ")
	case "yaml":
		data, err = yaml.Marshal(map[string]any{c.Command: buildMapFromStruct(t, flagName)})
	case "toml":
		data, err = toml.Marshal(buildMapFromStruct(t, flagName))
	}
	if err != nil {
		return err
	}
	return os.WriteFile(dest, data, 0o644)
}

func normalizeFormat(f string) string {
	switch strings.ToLower(f) {
	case "json":
		return "json"
	case "yaml", "yml":
		return "yaml"
	case "toml":
		return "toml"
	default:
		return ""
	}
}

// flagName returns the kebab-case flag name kong derives for a field:
// HeaderFile -> "header-file".
func flagName(f reflect.StructField) string {
	if name := f.Tag.Get("name"); name != "" {
		return name
	}
	var b strings.Builder
	r := []rune(f.Name)
	for i, c := range r {
		if i > 0 && unicode.IsUpper(c) && (unicode.IsLower(r[i-1]) || (i+1 < len(r) && unicode.IsLower(r[i+1]))) {
			b.WriteByte('-')
		}
		b.WriteRune(unicode.ToLower(c))
	}
	return b.String()
}

// configKey returns the camelCase key kong's JSON loader accepts for a flag:
// "json-file" -> "jsonFile", HeaderFile -> "headerFile".
func configKey(f reflect.StructField) string {
	parts := strings.Split(flagName(f), "-")
	for i := 1; i < len(parts); i++ {
		if parts[i] != "" {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, "")
}

func buildMapFromStruct(t reflect.Type, key func(reflect.StructField) string) map[string]any {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	out := map[string]any{}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if f.Tag.Get("kong") == "-" {
			continue
		}

		if _, ok := f.Tag.Lookup("embed"); ok {
			prefix := f.Tag.Get("prefix")
			name := strings.TrimSuffix(prefix, ".")
			sub := buildMapFromStruct(f.Type, key)
			if name != "" {
				out[name] = sub
			} else {
				for k, v := range sub {
					out[k] = v
				}
			}
			continue
		}

		if val := defaultValueForField(f.Type, f.Tag.Get("default"), key); val != nil {
			out[key(f)] = val
		}
	}
	return out
}

func defaultValueForField(t reflect.Type, def string, key func(reflect.StructField) string) any {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return def // may be empty
	case reflect.Slice:
		if t.Elem().Kind() != reflect.String {
			return nil
		}
		items := []string{}
		for _, item := range strings.Split(def, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		return items
	case reflect.Struct:
		return buildMapFromStruct(t, key)
	default:
		return nil
	}
}
