package cli

import (
	"path/filepath"
	"strings"

	"github.com/mobile-next/facepointer/commands"
	"github.com/spf13/cobra"
)

var profileName string

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Import and export settings profiles",
	Long:  `Profiles are YAML files, or property lists when the file name ends in .plist.`,
}

var profileExportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Write the current settings to a profile file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openSettings(false)
		if err != nil {
			return err
		}

		name := profileName
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		}
		return printResponse(commands.ProfileExportCommand(store, args[0], name))
	},
}

var profileImportCmd = &cobra.Command{
	Use:   "import [path]",
	Short: "Apply a profile file to the current settings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openSettings(true)
		if err != nil {
			return err
		}
		return printResponse(commands.ProfileImportCommand(store, args[0]))
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileExportCmd, profileImportCmd)
	profileExportCmd.Flags().StringVar(&profileName, "name", "", "profile name (default: file name)")
}
