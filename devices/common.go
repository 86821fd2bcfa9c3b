package devices

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mobile-next/facepointer/types"
	"github.com/mobile-next/facepointer/utils"
)

var ErrUnsupportedAction = errors.New("unsupported action")

// Button is a navigation button the injector can press.
type Button string

const (
	ButtonHome          Button = "home"
	ButtonBack          Button = "back"
	ButtonNotifications Button = "notifications"
	ButtonApps          Button = "apps"
)

// ParseButton accepts a button name in any case.
func ParseButton(name string) (Button, error) {
	b := Button(strings.ToLower(strings.TrimSpace(name)))
	switch b {
	case ButtonHome, ButtonBack, ButtonNotifications, ButtonApps:
		return b, nil
	}
	return "", fmt.Errorf("%w: button %q", ErrUnsupportedAction, name)
}

// Injector delivers touch input to a device. Coordinates are screen pixels.
type Injector interface {
	ID() string
	Tap(x, y int) error
	LongPress(x, y, durationMs int) error
	Swipe(x1, y1, x2, y2, durationMs int) error
	PressButton(button Button) error
}

// Perform delivers one engine action. TogglePause is a session concern and is
// reported as unsupported.
func Perform(inj Injector, action types.Action) error {
	switch action.Kind {
	case types.ActionNone:
		return nil
	case types.ActionTap:
		return inj.Tap(action.Start.X, action.Start.Y)
	case types.ActionLongPress:
		return inj.LongPress(action.Start.X, action.Start.Y, action.DurationMs)
	case types.ActionSwipe, types.ActionDrag:
		return inj.Swipe(action.Start.X, action.Start.Y, action.End.X, action.End.Y, action.DurationMs)
	case types.ActionHome:
		return inj.PressButton(ButtonHome)
	case types.ActionBack:
		return inj.PressButton(ButtonBack)
	case types.ActionNotifications:
		return inj.PressButton(ButtonNotifications)
	case types.ActionAllApps:
		return inj.PressButton(ButtonApps)
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedAction, action.Kind)
}

// DeviceInfo represents the JSON-friendly device information
type DeviceInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Platform string `json:"platform"`
	Type     string `json:"type"`
}

// GetDeviceInfoList returns a list of DeviceInfo for all connected devices
func GetDeviceInfoList() ([]DeviceInfo, error) {
	androidDevices, err := GetAndroidDevices()
	if err != nil {
		utils.Verbose("Warning: Failed to get Android devices: %v", err)
		return nil, fmt.Errorf("error getting devices: %w", err)
	}

	deviceInfoList := make([]DeviceInfo, len(androidDevices))
	for i, d := range androidDevices {
		deviceInfoList[i] = DeviceInfo{
			ID:       d.ID(),
			Name:     d.Name(),
			Platform: d.Platform(),
			Type:     d.DeviceType(),
		}
	}

	return deviceInfoList, nil
}
