package cli

import (
	"runtime/debug"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("sumdiff version %s%s\n", version, vcsSuffix())
	},
}

// vcsSuffix returns the embedded VCS revision when the binary was built
// from a checkout without ldflags.
func vcsSuffix() string {
	if version != "dev" {
		return ""
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return " (" + s.Value[:7] + ")"
		}
	}
	return ""
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
