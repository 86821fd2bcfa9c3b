package cli

var (
	verbose bool

	// device selection, shared by io and run
	deviceId    string
	remoteAddr  string
	remoteToken string
	dryRun      bool

	// settings file, defaults to the user config directory
	settingsPath string
)
