package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"entity-binder/internal/config"
	"entity-binder/internal/logging"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "entity-binder",
		Short:         "Resolve entity hierarchies and mapped properties",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "YAML configuration file")
	flags.String("dir", "", "directory Go packages are loaded from")
	flags.StringSlice("descriptor", nil, "YAML descriptor file (repeatable)")
	flags.String("format", "", "output format: text, yaml or json")
	flags.Bool("strict", false, "treat ignored access overrides as errors")
	flags.Int("concurrency", 0, "hierarchies built in parallel, 0 for one per CPU")
	flags.String("log-level", "", "log level")
	flags.Bool("log-json", false, "log JSON lines instead of console output")
	flags.Bool("log-color", true, "colored console logs")

	root.AddCommand(newHierarchiesCmd(), newCheckCmd(), newDescribeCmd())

	return root
}

// flagKeys maps persistent flags to configuration keys.
var flagKeys = []struct {
	flag string
	key  string
}{
	{"dir", "dir"},
	{"descriptor", "descriptors"},
	{"format", "format"},
	{"strict", "strict"},
	{"concurrency", "concurrency"},
	{"log-level", "log.level"},
	{"log-json", "log.json"},
	{"log-color", "log.color"},
}

// loadConfig merges the configuration file, environment and the flags set
// on the command line. Positional arguments are package patterns.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, zerolog.Logger, error) {
	flags := cmd.Flags()
	overrides := map[string]any{}

	for _, fk := range flagKeys {
		f := flags.Lookup(fk.flag)
		if f == nil || !f.Changed {
			continue
		}

		var (
			v   any
			err error
		)

		switch f.Value.Type() {
		case "bool":
			v, err = flags.GetBool(fk.flag)
		case "int":
			v, err = flags.GetInt(fk.flag)
		case "stringSlice":
			v, err = flags.GetStringSlice(fk.flag)
		default:
			v = f.Value.String()
		}

		if err != nil {
			return nil, zerolog.Nop(), err
		}

		overrides[fk.key] = v
	}

	if len(args) > 0 {
		overrides["patterns"] = args
	}

	path, err := flags.GetString("config")
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	cfg, err := config.Load(path, overrides)
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	log, err := logging.New(cmd.ErrOrStderr(), logging.Options{
		Level: cfg.Log.Level,
		Color: cfg.Log.Color,
		JSON:  cfg.Log.JSON,
	})
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	return cfg, log, nil
}
