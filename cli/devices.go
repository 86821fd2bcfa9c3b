package cli

import (
	"github.com/mobile-next/facepointer/commands"
	"github.com/spf13/cobra"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List connected devices",
	Long:  `List Android devices reported online by adb.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printResponse(commands.DevicesCommand())
	},
}

func init() {
	rootCmd.AddCommand(devicesCmd)
}
