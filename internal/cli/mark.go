package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/adobe-type-tools/feawriter/core"
	"github.com/adobe-type-tools/feawriter/core/font/fea"
	"github.com/adobe-type-tools/feawriter/core/font/mark"
	"github.com/adobe-type-tools/feawriter/core/font/ufo"
)

// markFiles names the output files of the mark subcommand.
type markFiles struct {
	mark, mkmk, classes, abvm, blwm string
}

func newMarkCmd() *cobra.Command {
	cfg := mark.DefaultConfig()
	files := markFiles{"mark.fea", "mkmk.fea", "markclasses.fea", "abvm.fea", "blwm.fea"}

	cmd := &cobra.Command{
		Use:   "mark <font.ufo> ...",
		Short: "Compile UFO anchors into mark attachment feature fragments",
		Long: `Reads the glyph anchors of each UFO and writes mark-attachment feature
fragments next to it: mark-to-base and mark-to-ligature rules always, plus
optional mark-to-mark, Indic above/below-base and standalone mark-class
fragments. Combining marks are the members of the reference group (see
--mkgrp_name); anchors pair by name, "_above" marks attach at "above" bases.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				if err := writeMark(path, files, cfg); err != nil {
					core.UserError(err)
					return err
				}
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.GroupName, "mkgrp_name", cfg.GroupName,
		"name of the reference group listing all combining marks")
	flags.BoolVar(&cfg.TrimTags, "trim_tags", cfg.TrimTags,
		"strip casing tags (UC, LC, SC) from anchor names")
	flags.BoolVar(&cfg.WriteMkmk, "write_mkmk", cfg.WriteMkmk,
		"also write the mark-to-mark fragment")
	flags.BoolVar(&cfg.IndicFormat, "indic_format", cfg.IndicFormat,
		"divert abvm/blwm anchor roles into their own fragments")
	flags.BoolVar(&cfg.WriteClasses, "write_classes", cfg.WriteClasses,
		"keep mark classes in a standalone fragment")
	flags.StringVar(&files.mark, "mark_file", files.mark,
		"name of the mark feature file")
	flags.StringVar(&files.mkmk, "mkmk_file", files.mkmk,
		"name of the mkmk feature file")
	flags.StringVar(&files.classes, "mkclass_file", files.classes,
		"name of the mark classes file")
	flags.StringVar(&files.abvm, "abvm_file", files.abvm,
		"name of the above-base feature file")
	flags.StringVar(&files.blwm, "blwm_file", files.blwm,
		"name of the below-base feature file")
	return cmd
}

func writeMark(ufoPath string, files markFiles, cfg mark.Config) error {
	f, err := ufo.Load(ufoPath)
	if err != nil {
		return err
	}
	frags, err := mark.Write(f, cfg)
	if err != nil {
		return err
	}
	dir := filepath.Dir(ufoPath)
	outputs := []struct {
		name     string
		fragment string
	}{
		{files.classes, frags.MarkClasses},
		{files.mark, frags.Mark},
		{files.mkmk, frags.Mkmk},
		{files.abvm, frags.Abvm},
		{files.blwm, frags.Blwm},
	}
	for _, out := range outputs {
		if err := fea.Save(filepath.Join(dir, out.name), out.fragment); err != nil {
			return err
		}
	}
	return nil
}
