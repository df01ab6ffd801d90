/*
Package cli implements the feawriter command-line interface.

Two subcommands, one per compiler: "kern" writes pair-positioning feature
text, "mark" writes mark-attachment feature text. Both take one or more UFO
packages as arguments and write the generated fragments next to each UFO.

Flag defaults may be kept in a TOML file (--config) with one table per
subcommand; flags given on the command line win over the file.
*/
package cli

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Execute runs the feawriter CLI.
func Execute() error {
	var verbose bool
	var configFile string

	root := &cobra.Command{
		Use:   "feawriter",
		Short: "feawriter compiles UFO font sources into OpenType feature text",
		Long: `feawriter reads kerning and anchor data from UFO font packages and writes
OpenType feature-file fragments (kern and mark features) next to each UFO.
The fragments carry rule bodies only and are meant to be included from a
hand-maintained features file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			gtrace.CoreTracer = gologadapter.New()
			level := tracing.LevelInfo
			if verbose {
				level = tracing.LevelDebug
			}
			gtrace.CoreTracer.SetTraceLevel(level)
			return applyConfigFile(cmd, configFile)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug tracing")
	root.PersistentFlags().StringVar(&configFile, "config", "", "TOML file with flag defaults")

	root.AddCommand(newKernCmd())
	root.AddCommand(newMarkCmd())
	return root.Execute()
}

// applyConfigFile fills unset flags of the invoked subcommand from the TOML
// table named after it. Flags set on the command line keep their value.
func applyConfigFile(cmd *cobra.Command, path string) error {
	if path == "" {
		return nil
	}
	var sections map[string]map[string]interface{}
	if _, err := toml.DecodeFile(path, &sections); err != nil {
		return fmt.Errorf("config file %s: %w", path, err)
	}
	section := sections[cmd.Name()]
	if section == nil {
		return nil
	}
	var applyErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed || applyErr != nil {
			return
		}
		v, ok := section[f.Name]
		if !ok {
			return
		}
		if err := f.Value.Set(fmt.Sprint(v)); err != nil {
			applyErr = fmt.Errorf("config file %s: [%s] %s: %w", path, cmd.Name(), f.Name, err)
		}
	})
	return applyErr
}
