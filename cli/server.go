package cli

import (
	"fmt"

	"github.com/mobile-next/facepointer/daemon"
	"github.com/mobile-next/facepointer/server"
	"github.com/mobile-next/facepointer/utils"
	"github.com/spf13/cobra"
)

const defaultServerAddress = "localhost:12000"

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Server management commands",
	Long:  `Commands for managing the facepointer server.`,
}

var serverStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the facepointer server",
	Long:  `Starts the facepointer server, exposing pointer sessions and input injection over JSON-RPC.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		listenAddr := cmd.Flag("listen").Value.String()
		if listenAddr == "" {
			listenAddr = defaultServerAddress
		}

		// GetBool/GetString cannot fail for defined flags
		enableCORS, _ := cmd.Flags().GetBool("cors")
		isDaemon, _ := cmd.Flags().GetBool("daemon")
		useAuth, _ := cmd.Flags().GetBool("auth")
		watch, _ := cmd.Flags().GetBool("watch")

		addr, err := server.NormalizeListenAddr(listenAddr)
		if err != nil {
			return err
		}
		if !daemon.IsChild() {
			if err := utils.CheckListenAddr(addr); err != nil {
				return err
			}
		}

		if isDaemon && !daemon.IsChild() {
			_, err := daemon.Daemonize()
			if err != nil {
				return fmt.Errorf("failed to start daemon: %w", err)
			}

			fmt.Printf("Server daemon spawned, attempting to listen on %s\n", listenAddr)
			return nil
		}

		opts := server.Options{
			EnableCORS:    enableCORS,
			WatchSettings: watch,
		}

		if useAuth {
			token, err := loadOrCreateToken(false)
			if err != nil {
				return err
			}
			opts.Token = token
		}

		store, err := openSettings(watch)
		if err != nil {
			return err
		}
		opts.Settings = store

		return server.StartServer(listenAddr, opts)
	},
}

var serverKillCmd = &cobra.Command{
	Use:   "kill",
	Short: "Stop the daemonized facepointer server",
	Long:  `Connects to the server and sends a shutdown command via JSON-RPC.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// GetString cannot fail for defined flags
		addr, _ := cmd.Flags().GetString("listen")
		if addr == "" {
			addr = defaultServerAddress
		}

		token := ""
		if useAuth, _ := cmd.Flags().GetBool("auth"); useAuth {
			var err error
			if token, err = storedToken(); err != nil {
				return err
			}
		}

		err := daemon.KillServer(addr, token)
		if err != nil {
			return err
		}

		fmt.Printf("Server shutdown command sent successfully\n")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	// add server subcommands
	serverCmd.AddCommand(serverStartCmd)
	serverCmd.AddCommand(serverKillCmd)

	// server start flags
	serverStartCmd.Flags().String("listen", "", "Address to listen on (e.g., 'localhost:12000' or '0.0.0.0:13000')")
	serverStartCmd.Flags().Bool("cors", false, "Enable CORS support")
	serverStartCmd.Flags().BoolP("daemon", "d", false, "Run server in daemon mode (background)")
	serverStartCmd.Flags().Bool("auth", false, "Require the keyring token as a bearer token")
	serverStartCmd.Flags().Bool("watch", false, "Reload settings into live sessions when the settings file changes")

	// server kill flags
	serverKillCmd.Flags().String("listen", "", fmt.Sprintf("Address of server to kill (default: %s)", defaultServerAddress))
	serverKillCmd.Flags().Bool("auth", false, "Send the keyring token")
}
