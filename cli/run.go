package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mobile-next/facepointer/commands"
	"github.com/mobile-next/facepointer/devices"
	"github.com/mobile-next/facepointer/service"
	"github.com/mobile-next/facepointer/settings"
	"github.com/mobile-next/facepointer/types"
	"github.com/mobile-next/facepointer/utils"
	"github.com/spf13/cobra"
)

var (
	runInput    string
	runScreen   string
	runTickMs   int
	runState    string
	runWatch    bool
	runNoInject bool
)

// parseScreen parses "WIDTHxHEIGHT".
func parseScreen(s string) (types.Size, error) {
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return types.Size{}, fmt.Errorf("invalid screen size '%s', expected WIDTHxHEIGHT", s)
	}
	width, errW := strconv.Atoi(strings.TrimSpace(w))
	height, errH := strconv.Atoi(strings.TrimSpace(h))
	if errW != nil || errH != nil {
		return types.Size{}, fmt.Errorf("invalid screen size '%s', expected WIDTHxHEIGHT", s)
	}
	size := types.Size{Width: width, Height: height}
	if !size.Valid() {
		return types.Size{}, fmt.Errorf("screen size must be positive, got %dx%d", width, height)
	}
	return size, nil
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	return f, nil
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Drive the pointer from recorded face tracker output",
	Long: `Replays face tracker samples, one JSON object per line with "head", "blendshapes" and
optionally "ts" and "screen", through a pointer session at a fixed tick rate. Actions are
injected into the selected device.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		screen, err := parseScreen(runScreen)
		if err != nil {
			return err
		}
		state, err := service.ParseState(runState)
		if err != nil {
			return err
		}

		store, err := openSettings(runWatch)
		if err != nil {
			return err
		}

		var injector devices.Injector
		if !runNoInject {
			injector, err = commands.FindInjector(deviceId)
			if err != nil {
				return err
			}
		}

		input, err := openInput(runInput)
		if err != nil {
			return err
		}
		defer input.Close()

		sess := service.NewSession(uuid.NewString(), service.Options{
			Config:       store.Config(),
			Bindings:     store.Bindings(),
			Screen:       screen,
			Injector:     injector,
			TickInterval: time.Duration(runTickMs) * time.Millisecond,
			State:        state,
		})
		defer sess.Close()
		shutdownHook.Register("session "+sess.ID(), sess.Close)

		if runWatch {
			watcher, err := settings.Watch(store, sess.ApplySettings)
			if err != nil {
				return err
			}
			defer watcher.Close()
		}

		source := service.NewReplaySource(input)
		utils.Info("replaying %s on %dx%d", runInput, screen.Width, screen.Height)
		if err := sess.Run(cmd.Context(), source); err != nil {
			return err
		}
		if err := source.Err(); err != nil {
			return err
		}

		printJson(commands.NewSuccessResponse(sess.Snapshot()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	addDeviceFlags(runCmd)

	runCmd.Flags().StringVarP(&runInput, "input", "i", "-", "samples file in JSON lines format, '-' for stdin")
	runCmd.Flags().StringVar(&runScreen, "screen", "1080x1920", "screen size as WIDTHxHEIGHT")
	runCmd.Flags().IntVar(&runTickMs, "tick-ms", int(service.DefaultTickInterval/time.Millisecond), "tick period in milliseconds")
	runCmd.Flags().StringVar(&runState, "state", "ENABLE", "initial state: ENABLE, PAUSE or DISABLE")
	runCmd.Flags().BoolVar(&runWatch, "watch", false, "apply settings file changes while running")
	runCmd.Flags().BoolVar(&runNoInject, "no-inject", false, "compute actions without sending them anywhere")
}
