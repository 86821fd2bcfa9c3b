package commands

import (
	"github.com/mobile-next/facepointer/devices"
)

// DevicesCommand lists connected Android devices
func DevicesCommand() *CommandResponse {
	deviceInfoList, err := devices.GetDeviceInfoList()
	if err != nil {
		return NewErrorResponse(err)
	}

	return NewSuccessResponse(map[string]interface{}{
		"devices": deviceInfoList,
	})
}
