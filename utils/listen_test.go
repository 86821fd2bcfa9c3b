package utils

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckListenAddr_Free(t *testing.T) {
	assert.NoError(t, CheckListenAddr("127.0.0.1:0"))
}

func TestCheckListenAddr_InUse(t *testing.T) {
	// Create a listener to occupy a port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err, "Failed to create test listener")
	defer listener.Close()

	err = CheckListenAddr(listener.Addr().String())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), listener.Addr().String())
}

func TestCheckListenAddr_Invalid(t *testing.T) {
	assert.Error(t, CheckListenAddr("127.0.0.1:100000"))
}
