package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mobile-next/facepointer/commands"
	"github.com/spf13/cobra"
)

var ioDuration int

var ioCmd = &cobra.Command{
	Use:   "io",
	Short: "Input operations on devices",
	Long:  `Inject single touch and button events, the same actions the pointer engine performs.`,
}

// parseCoords splits "a,b,..." into exactly n integers.
func parseCoords(s string, n int) ([]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("invalid coordinate format. Expected %d comma separated values, got '%s'", n, s)
	}

	coords := make([]int, n)
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid coordinate values. Expected integers, got '%s'", s)
		}
		coords[i] = v
	}
	return coords, nil
}

var ioTapCmd = &cobra.Command{
	Use:   "tap [x,y]",
	Short: "Tap on a device screen at the given coordinates",
	Long:  `Sends a tap event to the specified device at the given x,y coordinates. Coordinates should be provided as a single string "x,y".`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := parseCoords(args[0], 2)
		if err != nil {
			return printResponse(commands.NewErrorResponse(err))
		}

		return printResponse(commands.TapCommand(commands.TapRequest{
			DeviceID: deviceId,
			X:        c[0],
			Y:        c[1],
		}))
	},
}

var ioLongPressCmd = &cobra.Command{
	Use:   "longpress [x,y]",
	Short: "Long press on a device screen at the given coordinates",
	Long:  `Sends a long press event to the specified device at the given x,y coordinates. Coordinates should be provided as a single string "x,y".`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := parseCoords(args[0], 2)
		if err != nil {
			return printResponse(commands.NewErrorResponse(err))
		}

		return printResponse(commands.LongPressCommand(commands.LongPressRequest{
			DeviceID: deviceId,
			X:        c[0],
			Y:        c[1],
			Duration: ioDuration,
		}))
	},
}

var ioSwipeCmd = &cobra.Command{
	Use:   "swipe [x1,y1,x2,y2]",
	Short: "Swipe on a device screen from one point to another",
	Long:  `Sends a swipe gesture to the specified device from coordinates x1,y1 to x2,y2. Coordinates should be provided as a single string "x1,y1,x2,y2".`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := parseCoords(args[0], 4)
		if err != nil {
			return printResponse(commands.NewErrorResponse(err))
		}

		return printResponse(commands.SwipeCommand(commands.SwipeRequest{
			DeviceID: deviceId,
			X1:       c[0],
			Y1:       c[1],
			X2:       c[2],
			Y2:       c[3],
			Duration: ioDuration,
		}))
	},
}

var ioButtonCmd = &cobra.Command{
	Use:   "button [button_name]",
	Short: "Press a navigation button on a device",
	Long:  `Sends a navigation button press to the specified device: HOME, BACK, NOTIFICATIONS or APPS. Button names are case-insensitive.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printResponse(commands.ButtonCommand(commands.ButtonRequest{
			DeviceID: deviceId,
			Button:   args[0],
		}))
	},
}

func init() {
	rootCmd.AddCommand(ioCmd)

	ioCmd.AddCommand(ioTapCmd, ioLongPressCmd, ioSwipeCmd, ioButtonCmd)
	for _, cmd := range []*cobra.Command{ioTapCmd, ioLongPressCmd, ioSwipeCmd, ioButtonCmd} {
		addDeviceFlags(cmd)
	}

	ioLongPressCmd.Flags().IntVar(&ioDuration, "duration", 0, "press duration in milliseconds (default: hold time)")
	ioSwipeCmd.Flags().IntVar(&ioDuration, "duration", 0, "swipe duration in milliseconds (default: 100)")
}
