package devices

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

// AndroidSdkPath returns ANDROID_HOME when it exists, else the platform's
// default SDK location, or "" when none is found.
func AndroidSdkPath() string {
	sdkPath := os.Getenv("ANDROID_HOME")
	if sdkPath != "" {
		if _, err := os.Stat(sdkPath); err == nil {
			return sdkPath
		}
	}

	homeDir, _ := os.UserHomeDir()
	var candidates []string
	switch runtime.GOOS {
	case "darwin":
		candidates = append(candidates, filepath.Join(homeDir, "Library", "Android", "sdk"))
	case "linux":
		candidates = append(candidates, filepath.Join(homeDir, "Android", "Sdk"))
	case "windows":
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			candidates = append(candidates, filepath.Join(localAppData, "Android", "Sdk"))
		}
		candidates = append(candidates, filepath.Join(homeDir, "AppData", "Local", "Android", "Sdk"))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// FindAdb returns the adb binary from the SDK, or from PATH, or "" when
// adb is not installed.
func FindAdb() string {
	sdkPath := AndroidSdkPath()
	if sdkPath != "" {
		adbPath := filepath.Join(sdkPath, "platform-tools", "adb")
		if runtime.GOOS == "windows" {
			adbPath += ".exe"
		}

		if _, err := os.Stat(adbPath); err == nil {
			return adbPath
		}
	}

	// check if adb is in PATH
	adbPath, err := exec.LookPath("adb")
	if err == nil {
		return adbPath
	}

	return ""
}

var adbPath = sync.OnceValue(func() string {
	if path := FindAdb(); path != "" {
		return path
	}
	return "adb"
})

func execAdb(args ...string) ([]byte, error) {
	return exec.Command(adbPath(), args...).CombinedOutput()
}

// AdbVersion returns the "Android Debug Bridge version" line of the adb at path.
func AdbVersion(path string) string {
	if path == "" {
		return ""
	}

	output, err := exec.Command(path, "version").CombinedOutput()
	if err != nil {
		return ""
	}

	// parse the output to get just the version line
	lines := strings.Split(string(output), "\n")
	for _, line := range lines {
		if strings.Contains(line, "Android Debug Bridge version") {
			return strings.TrimSpace(line)
		}
	}

	return strings.TrimSpace(string(output))
}
