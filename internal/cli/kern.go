package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/adobe-type-tools/feawriter/core"
	"github.com/adobe-type-tools/feawriter/core/font/fea"
	"github.com/adobe-type-tools/feawriter/core/font/kern"
	"github.com/adobe-type-tools/feawriter/core/font/ufo"
)

func newKernCmd() *cobra.Command {
	cfg := kern.DefaultConfig()
	outputName := "kern.fea"

	cmd := &cobra.Command{
		Use:   "kern <font.ufo> ...",
		Short: "Compile UFO kerning into a kern feature fragment",
		Long: `Reads the kerning pairs and kerning groups of each UFO and writes a
pair-positioning feature fragment next to it. Right-to-left pairs (identified
by group script tags or by membership in the RTL reference group) go into a
separate lookup with RightToLeft IgnoreMarks flags.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				if err := writeKern(path, outputName, cfg); err != nil {
					core.UserError(err)
					return err
				}
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.Float64Var(&cfg.MinValue, "min_value", cfg.MinValue,
		"minimum absolute kerning value; smaller class pairs are trimmed")
	flags.BoolVar(&cfg.WriteTrimmed, "write_trimmed_pairs", cfg.WriteTrimmed,
		"keep trimmed pairs in the output, as comments")
	flags.BoolVar(&cfg.WriteSubtables, "write_subtables", cfg.WriteSubtables,
		"split class kerning into capacity-bounded subtables")
	flags.IntVar(&cfg.SubtableSize, "subtable_size", cfg.SubtableSize,
		"subtable capacity, in distinct glyph classes")
	flags.StringVar(&cfg.IgnoreSuffix, "ignore_suffix", cfg.IgnoreSuffix,
		"skip kerning items carrying this name suffix")
	flags.BoolVar(&cfg.DissolveSingle, "dissolve_single", cfg.DissolveSingle,
		"rewrite single-member group sides as plain glyphs")
	flags.StringVar(&cfg.RTLGroupName, "rtl_group", cfg.RTLGroupName,
		"name of the reference group marking RTL kerning")
	flags.StringVar(&outputName, "output_name", outputName,
		"name of the generated feature file")
	return cmd
}

func writeKern(ufoPath, outputName string, cfg kern.Config) error {
	f, err := ufo.Load(ufoPath)
	if err != nil {
		return err
	}
	fragment, err := kern.Write(f, cfg)
	if err != nil {
		return err
	}
	return fea.Save(filepath.Join(filepath.Dir(ufoPath), outputName), fragment)
}
