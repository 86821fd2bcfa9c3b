package server

import (
	"encoding/json"
	"fmt"

	"github.com/mobile-next/facepointer/commands"
)

type IoTapParams struct {
	DeviceID string `json:"deviceId"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
}

type IoLongPressParams struct {
	DeviceID string `json:"deviceId"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Duration int    `json:"duration,omitempty"`
}

type IoSwipeParams struct {
	DeviceID string `json:"deviceId"`
	X1       int    `json:"x1"`
	Y1       int    `json:"y1"`
	X2       int    `json:"x2"`
	Y2       int    `json:"y2"`
	Duration int    `json:"duration,omitempty"`
}

type IoButtonParams struct {
	DeviceID string `json:"deviceId"`
	Button   string `json:"button"`
}

func handleDevicesList(params json.RawMessage) (interface{}, error) {
	response := commands.DevicesCommand()
	if response.Status == "error" {
		return nil, fmt.Errorf("%s", response.Error)
	}
	return response.Data, nil
}

func handleIoTap(params json.RawMessage) (interface{}, error) {
	var p IoTapParams
	if err := decodeParams(params, &p, "deviceId, x, y"); err != nil {
		return nil, err
	}

	response := commands.TapCommand(commands.TapRequest{
		DeviceID: p.DeviceID,
		X:        p.X,
		Y:        p.Y,
	})
	if response.Status == "error" {
		return nil, fmt.Errorf("%s", response.Error)
	}

	return okResponse, nil
}

func handleIoLongPress(params json.RawMessage) (interface{}, error) {
	var p IoLongPressParams
	if err := decodeParams(params, &p, "deviceId, x, y, duration"); err != nil {
		return nil, err
	}

	response := commands.LongPressCommand(commands.LongPressRequest{
		DeviceID: p.DeviceID,
		X:        p.X,
		Y:        p.Y,
		Duration: p.Duration,
	})
	if response.Status == "error" {
		return nil, fmt.Errorf("%s", response.Error)
	}

	return okResponse, nil
}

func handleIoSwipe(params json.RawMessage) (interface{}, error) {
	var p IoSwipeParams
	if err := decodeParams(params, &p, "deviceId, x1, y1, x2, y2"); err != nil {
		return nil, err
	}

	// validate that coordinates are provided (x1,y1,x2,y2 must be present)
	var rawParams map[string]interface{}
	if err := json.Unmarshal(params, &rawParams); err != nil {
		return nil, invalidParams("invalid parameters format")
	}

	requiredFields := []string{"x1", "y1", "x2", "y2"}
	for _, field := range requiredFields {
		if _, exists := rawParams[field]; !exists {
			return nil, invalidParams("'%s' is required", field)
		}
	}

	response := commands.SwipeCommand(commands.SwipeRequest{
		DeviceID: p.DeviceID,
		X1:       p.X1,
		Y1:       p.Y1,
		X2:       p.X2,
		Y2:       p.Y2,
		Duration: p.Duration,
	})
	if response.Status == "error" {
		return nil, fmt.Errorf("%s", response.Error)
	}

	return okResponse, nil
}

func handleIoButton(params json.RawMessage) (interface{}, error) {
	var p IoButtonParams
	if err := decodeParams(params, &p, "deviceId, button"); err != nil {
		return nil, err
	}

	response := commands.ButtonCommand(commands.ButtonRequest{
		DeviceID: p.DeviceID,
		Button:   p.Button,
	})
	if response.Status == "error" {
		return nil, fmt.Errorf("%s", response.Error)
	}

	return okResponse, nil
}
