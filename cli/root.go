package cli

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/mobile-next/facepointer/commands"
	"github.com/mobile-next/facepointer/devices"
	"github.com/mobile-next/facepointer/settings"
	"github.com/mobile-next/facepointer/utils"
	"github.com/spf13/cobra"
)

const version = "dev"

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "facepointer",
	Short: "Hands-free pointer control driven by head motion and facial gestures",
	Long: `Turns face tracker output (head position and blendshape scores) into a screen cursor
and touch actions, and injects them into Android devices.`,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var shutdownHook = devices.NewShutdownHook()

// SetShutdownHook replaces the hook list that long-running commands register
// their cleanup with.
func SetShutdownHook(hook *devices.ShutdownHook) {
	shutdownHook = hook
}

func initConfig() {
	utils.SetVerbose(verbose)
	registerInjectors(commands.GetRegistry())
}

// registerInjectors adds the remote and dry-run injectors selected by flags.
func registerInjectors(registry *devices.Registry) {
	if dryRun {
		inj := devices.LogDevice{}
		registry.Add(inj)
		deviceId = inj.ID()
		return
	}
	if remoteAddr != "" {
		inj := devices.NewRemoteDevice(remoteAddr, deviceId, remoteToken)
		registry.Add(inj)
		deviceId = inj.ID()
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "", "settings file (default: <user config dir>/facepointer/settings.ini)")
}

// addDeviceFlags registers the device selection flags on cmd.
func addDeviceFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&deviceId, "device", "", "ID of the device to target (optional, auto-selected when only one device is connected)")
	cmd.Flags().StringVar(&remoteAddr, "remote", "", "send input to a JSON-RPC server instead of adb (e.g. 'localhost:12000')")
	cmd.Flags().StringVar(&remoteToken, "remote-token", "", "bearer token for --remote")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "log actions instead of injecting them")
}

// openSettings opens the settings file named by --settings. When mkdir is
// set the containing directory is created so it can be watched.
func openSettings(mkdir bool) (*settings.Store, error) {
	path := settingsPath
	if path == "" {
		var err error
		path, err = settings.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	if mkdir {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create settings directory: %w", err)
		}
	}
	return settings.Open(path)
}

// Execute runs the root command
func Execute() error {
	// enable microseconds in logs
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	return rootCmd.Execute()
}

// printJson is a helper function to print JSON responses
func printJson(data interface{}) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(jsonData))
}

// printResponse prints a command response and turns its error into a command error.
func printResponse(response *commands.CommandResponse) error {
	printJson(response)
	if response.Status == "error" {
		return fmt.Errorf("%s", response.Error)
	}
	return nil
}
