package cli

import (
	"fmt"
	"strconv"

	"github.com/mobile-next/facepointer/commands"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read and change pointer settings",
	Long:  `Settings are stored as raw slider values; the effective value is the raw value times a per-key multiplier.`,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Show one setting, or all of them",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openSettings(false)
		if err != nil {
			return err
		}

		key := ""
		if len(args) == 1 {
			key = args[0]
		}
		return printResponse(commands.ConfigGetCommand(store, key))
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [raw_value]",
	Short: "Store a raw slider value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := strconv.Atoi(args[1])
		if err != nil {
			return printResponse(commands.NewErrorResponse(fmt.Errorf("invalid value '%s', expected an integer", args[1])))
		}

		store, err := openSettings(true)
		if err != nil {
			return err
		}
		return printResponse(commands.ConfigSetCommand(store, args[0], raw))
	},
}

var bindCmd = &cobra.Command{
	Use:   "bind [event] [shape] [threshold]",
	Short: "Bind a facial gesture to a pointer event",
	Long: `Binds EVENT (e.g. CURSOR_TOUCH, SWIPE_LEFT) to SHAPE (e.g. OPEN_MOUTH, NONE to unbind).
The event fires when the gesture score rises above THRESHOLD, between 0 and 1.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		threshold, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return printResponse(commands.NewErrorResponse(fmt.Errorf("invalid threshold '%s'", args[2])))
		}

		store, err := openSettings(true)
		if err != nil {
			return err
		}
		return printResponse(commands.BindCommand(store, args[0], args[1], threshold))
	},
}

func init() {
	rootCmd.AddCommand(configCmd, bindCmd)
	configCmd.AddCommand(configGetCmd, configSetCmd)
}
