package utils

import (
	"fmt"
	"net"
)

// CheckListenAddr reports an error when addr cannot be bound, typically
// because another server already listens there.
func CheckListenAddr(addr string) error {
	Verbose("Checking if %s is available", addr)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("cannot listen on %s: %w", addr, err)
	}

	return listener.Close()
}
