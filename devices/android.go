package devices

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mobile-next/facepointer/types"
)

// keyevent codes for buttons that map to a plain key press
var androidKeycodes = map[Button]string{
	ButtonHome: "3",
	ButtonBack: "4",
	ButtonApps: "284",
}

// adbRunner executes adb with the given arguments and returns combined output.
type adbRunner func(args ...string) ([]byte, error)

// AndroidDevice injects input through `adb shell input`.
type AndroidDevice struct {
	id   string
	name string
	adb  adbRunner
}

// NewAndroidDevice returns a device addressed by its adb serial.
func NewAndroidDevice(id string) *AndroidDevice {
	return &AndroidDevice{id: id, name: id, adb: execAdb}
}

func (d *AndroidDevice) ID() string {
	return d.id
}

func (d *AndroidDevice) Name() string {
	return d.name
}

func (d *AndroidDevice) Platform() string {
	return "android"
}

func (d *AndroidDevice) DeviceType() string {
	if strings.HasPrefix(d.id, "emulator-") {
		return "emulator"
	}
	return "real"
}

func (d *AndroidDevice) runAdbCommand(args ...string) ([]byte, error) {
	cmdArgs := append([]string{"-s", d.id}, args...)
	return d.adb(cmdArgs...)
}

func (d *AndroidDevice) input(args ...string) error {
	output, err := d.runAdbCommand(append([]string{"shell", "input"}, args...)...)
	if err != nil {
		return fmt.Errorf("AndroidDevice: input %s failed: %w\nOutput: %s", args[0], err, string(output))
	}
	return nil
}

// Tap presses (x, y) for a short click stroke.
func (d *AndroidDevice) Tap(x, y int) error {
	return d.Swipe(x, y, x, y, types.TapDurationMs)
}

// LongPress holds at (x, y) by swiping in place for durationMs.
func (d *AndroidDevice) LongPress(x, y, durationMs int) error {
	return d.Swipe(x, y, x, y, durationMs)
}

func (d *AndroidDevice) Swipe(x1, y1, x2, y2, durationMs int) error {
	return d.input("swipe",
		strconv.Itoa(x1), strconv.Itoa(y1),
		strconv.Itoa(x2), strconv.Itoa(y2),
		strconv.Itoa(max(durationMs, 1)))
}

func (d *AndroidDevice) PressButton(button Button) error {
	if button == ButtonNotifications {
		output, err := d.runAdbCommand("shell", "cmd", "statusbar", "expand-notifications")
		if err != nil {
			return fmt.Errorf("AndroidDevice: failed to expand notifications: %w\nOutput: %s", err, string(output))
		}
		return nil
	}

	keycode, exists := androidKeycodes[button]
	if !exists {
		return fmt.Errorf("%w: AndroidDevice button %q", ErrUnsupportedAction, button)
	}
	return d.input("keyevent", keycode)
}

func parseAdbDevicesOutput(output string, adb adbRunner) []*AndroidDevice {
	var devices []*AndroidDevice

	lines := strings.Split(output, "\n")
	for i := 1; i < len(lines); i++ {
		parts := strings.Fields(strings.TrimSpace(lines[i]))
		if len(parts) == 2 && parts[1] == "device" {
			devices = append(devices, &AndroidDevice{
				id:   parts[0],
				name: getAndroidDeviceName(parts[0], adb),
				adb:  adb,
			})
		}
	}

	return devices
}

func getAndroidDeviceName(deviceID string, adb adbRunner) string {
	modelOutput, err := adb("-s", deviceID, "shell", "getprop", "ro.product.model")
	if err == nil && len(modelOutput) > 0 {
		return strings.TrimSpace(string(modelOutput))
	}

	return deviceID
}

// GetAndroidDevices retrieves a list of connected Android devices
func GetAndroidDevices() ([]*AndroidDevice, error) {
	return listAndroidDevices(execAdb)
}

func listAndroidDevices(adb adbRunner) ([]*AndroidDevice, error) {
	output, err := adb("devices")
	if err != nil {
		return nil, fmt.Errorf("failed to run 'adb devices': %w", err)
	}
	return parseAdbDevicesOutput(string(output), adb), nil
}
