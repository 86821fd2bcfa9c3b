package commands

import (
	"fmt"

	"github.com/mobile-next/facepointer/devices"
	"github.com/mobile-next/facepointer/engine"
)

// TapRequest represents the parameters for a tap command
type TapRequest struct {
	DeviceID string `json:"deviceId"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
}

// LongPressRequest represents the parameters for a long press command
type LongPressRequest struct {
	DeviceID string `json:"deviceId"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Duration int    `json:"duration,omitempty"`
}

// SwipeRequest represents the parameters for a swipe command
type SwipeRequest struct {
	DeviceID string `json:"deviceId"`
	X1       int    `json:"x1"`
	Y1       int    `json:"y1"`
	X2       int    `json:"x2"`
	Y2       int    `json:"y2"`
	Duration int    `json:"duration,omitempty"`
}

// ButtonRequest represents the parameters for a button press command
type ButtonRequest struct {
	DeviceID string `json:"deviceId"`
	Button   string `json:"button"`
}

func validatePoint(x, y int) error {
	if x < 0 || y < 0 {
		return fmt.Errorf("x and y coordinates must be non-negative, got x=%d, y=%d", x, y)
	}
	return nil
}

// TapCommand performs a tap operation on the specified device
func TapCommand(req TapRequest) *CommandResponse {
	if err := validatePoint(req.X, req.Y); err != nil {
		return NewErrorResponse(err)
	}

	target, err := FindInjector(req.DeviceID)
	if err != nil {
		return NewErrorResponse(err)
	}

	if err := target.Tap(req.X, req.Y); err != nil {
		return NewErrorResponse(fmt.Errorf("failed to tap on device %s: %w", target.ID(), err))
	}

	return NewSuccessResponse(map[string]interface{}{
		"message": fmt.Sprintf("Tapped on device %s at (%d,%d)", target.ID(), req.X, req.Y),
	})
}

// LongPressCommand holds at a point; a zero duration uses the default hold time.
func LongPressCommand(req LongPressRequest) *CommandResponse {
	if err := validatePoint(req.X, req.Y); err != nil {
		return NewErrorResponse(err)
	}
	if req.Duration <= 0 {
		req.Duration = engine.DefaultConfig().HoldDurationMs
	}

	target, err := FindInjector(req.DeviceID)
	if err != nil {
		return NewErrorResponse(err)
	}

	if err := target.LongPress(req.X, req.Y, req.Duration); err != nil {
		return NewErrorResponse(fmt.Errorf("failed to long press on device %s: %w", target.ID(), err))
	}

	return NewSuccessResponse(map[string]interface{}{
		"message": fmt.Sprintf("Long pressed on device %s at (%d,%d) for %dms", target.ID(), req.X, req.Y, req.Duration),
	})
}

// SwipeCommand swipes between two points; a zero duration uses the swipe default.
func SwipeCommand(req SwipeRequest) *CommandResponse {
	if err := validatePoint(req.X1, req.Y1); err != nil {
		return NewErrorResponse(err)
	}
	if err := validatePoint(req.X2, req.Y2); err != nil {
		return NewErrorResponse(err)
	}
	if req.Duration <= 0 {
		req.Duration = engine.SwipeDurationMs
	}

	target, err := FindInjector(req.DeviceID)
	if err != nil {
		return NewErrorResponse(err)
	}

	if err := target.Swipe(req.X1, req.Y1, req.X2, req.Y2, req.Duration); err != nil {
		return NewErrorResponse(fmt.Errorf("failed to swipe on device %s: %w", target.ID(), err))
	}

	return NewSuccessResponse(map[string]interface{}{
		"message": fmt.Sprintf("Swiped on device %s from (%d,%d) to (%d,%d)", target.ID(), req.X1, req.Y1, req.X2, req.Y2),
	})
}

// ButtonCommand presses a navigation button on the specified device
func ButtonCommand(req ButtonRequest) *CommandResponse {
	if req.Button == "" {
		return NewErrorResponse(fmt.Errorf("button name is required"))
	}
	button, err := devices.ParseButton(req.Button)
	if err != nil {
		return NewErrorResponse(err)
	}

	target, err := FindInjector(req.DeviceID)
	if err != nil {
		return NewErrorResponse(err)
	}

	if err := target.PressButton(button); err != nil {
		return NewErrorResponse(fmt.Errorf("failed to press button on device %s: %w", target.ID(), err))
	}

	return NewSuccessResponse(map[string]interface{}{
		"message": fmt.Sprintf("Pressed button '%s' on device %s", button, target.ID()),
	})
}
