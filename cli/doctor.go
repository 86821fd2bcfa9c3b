package cli

import (
	"github.com/mobile-next/facepointer/commands"
	"github.com/mobile-next/facepointer/settings"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run system diagnostics",
	Long:  `Reports the adb installation and the settings file in use, for troubleshooting.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := settingsPath
		if path == "" {
			var err error
			if path, err = settings.DefaultPath(); err != nil {
				return err
			}
		}
		return printResponse(commands.DoctorCommand(version, path))
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
