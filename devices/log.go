package devices

import "github.com/mobile-next/facepointer/utils"

// LogDevice only logs what it would inject. Used for dry runs.
type LogDevice struct{}

func (LogDevice) ID() string {
	return "dry-run"
}

func (LogDevice) Tap(x, y int) error {
	utils.Info("tap (%d,%d)", x, y)
	return nil
}

func (LogDevice) LongPress(x, y, durationMs int) error {
	utils.Info("long press (%d,%d) for %dms", x, y, durationMs)
	return nil
}

func (LogDevice) Swipe(x1, y1, x2, y2, durationMs int) error {
	utils.Info("swipe (%d,%d) -> (%d,%d) in %dms", x1, y1, x2, y2, durationMs)
	return nil
}

func (LogDevice) PressButton(button Button) error {
	utils.Info("press %s", button)
	return nil
}
