package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestApplyConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feawriter.toml")
	content := `[kern]
min_value = 5.0
write_subtables = true
ignore_suffix = ".ctx"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cmd := &cobra.Command{Use: "kern"}
	minValue := cmd.Flags().Float64("min_value", 3, "")
	writeSubtables := cmd.Flags().Bool("write_subtables", false, "")
	ignoreSuffix := cmd.Flags().String("ignore_suffix", ".cxt", "")

	// a flag set on the command line wins over the file
	require.NoError(t, cmd.Flags().Set("ignore_suffix", ".kept"))

	require.NoError(t, applyConfigFile(cmd, path))
	require.Equal(t, 5.0, *minValue)
	require.True(t, *writeSubtables)
	require.Equal(t, ".kept", *ignoreSuffix)
}

func TestApplyConfigFileMissingSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feawriter.toml")
	require.NoError(t, os.WriteFile(path, []byte("[mark]\ntrim_tags = true\n"), 0644))

	cmd := &cobra.Command{Use: "kern"}
	minValue := cmd.Flags().Float64("min_value", 3, "")
	require.NoError(t, applyConfigFile(cmd, path))
	require.Equal(t, 3.0, *minValue, "no [kern] section, defaults stay")
}

func TestApplyConfigFileAbsent(t *testing.T) {
	cmd := &cobra.Command{Use: "kern"}
	require.NoError(t, applyConfigFile(cmd, ""))
	require.Error(t, applyConfigFile(cmd, "/nonexistent/feawriter.toml"))
}
