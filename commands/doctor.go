package commands

import (
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/mobile-next/facepointer/devices"
	"github.com/mobile-next/facepointer/settings"
)

type DoctorInfo struct {
	Version        string `json:"facepointer_version"`
	OS             string `json:"os"`
	OSVersion      string `json:"os_version"`
	AndroidHome    string `json:"android_home"`
	ADBPath        string `json:"adb_path"`
	ADBVersion     string `json:"adb_version,omitempty"`
	SettingsPath   string `json:"settings_path"`
	SettingsExists bool   `json:"settings_exists"`
	Bindings       int    `json:"bindings"`
	SettingsError  string `json:"settings_error,omitempty"`
}

func getOSVersion() string {
	switch runtime.GOOS {
	case "darwin":
		cmd := exec.Command("sw_vers", "-productVersion")
		output, err := cmd.CombinedOutput()
		if err != nil {
			return ""
		}
		return strings.TrimSpace(string(output))
	case "windows":
		cmd := exec.Command("cmd", "/c", "ver")
		output, err := cmd.CombinedOutput()
		if err != nil {
			return ""
		}
		return strings.TrimSpace(string(output))
	case "linux":
		// try reading /etc/os-release
		data, err := os.ReadFile("/etc/os-release")
		if err != nil {
			return ""
		}
		lines := strings.Split(string(data), "\n")
		for _, line := range lines {
			if strings.HasPrefix(line, "PRETTY_NAME=") {
				return strings.Trim(strings.TrimPrefix(line, "PRETTY_NAME="), "\"")
			}
		}
		return ""
	default:
		return ""
	}
}

// DoctorCommand reports the adb toolchain and the state of the settings file
// at settingsPath.
func DoctorCommand(version, settingsPath string) *CommandResponse {
	info := DoctorInfo{
		Version:      version,
		OS:           runtime.GOOS,
		OSVersion:    getOSVersion(),
		AndroidHome:  devices.AndroidSdkPath(),
		ADBPath:      devices.FindAdb(),
		SettingsPath: settingsPath,
	}

	// get adb version if adb is available
	if info.ADBPath != "" {
		info.ADBVersion = devices.AdbVersion(info.ADBPath)
	}

	if _, err := os.Stat(settingsPath); err == nil {
		info.SettingsExists = true
	}
	store, err := settings.Open(settingsPath)
	if err != nil {
		info.SettingsError = err.Error()
	} else {
		info.Bindings = store.Bindings().Len()
	}

	return NewSuccessResponse(info)
}
