// Package identity describes the local device for membership records.
// Both values are advisory free text, never used for routing or auth.
package identity

import (
	"fmt"
	"net"

	"github.com/shirou/gopsutil/host"
)

const (
	unknownDevice = "Unknown Device"
	unknownIP     = "Unknown IP"
)

// DeviceDescriptor returns a human-readable platform string,
// e.g. "ubuntu 24.04 (linux)".
func DeviceDescriptor() string {
	info, err := host.Info()
	if err != nil || info == nil || info.Platform == "" {
		return unknownDevice
	}
	return fmt.Sprintf("%s %s (%s)", info.Platform, info.PlatformVersion, info.OS)
}

// AdvisoryIP returns the first non-loopback IPv4 address of this machine.
func AdvisoryIP() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return unknownIP
	}
	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok || ipNet.IP.IsLoopback() {
			continue
		}
		if v4 := ipNet.IP.To4(); v4 != nil {
			return v4.String()
		}
	}
	return unknownIP
}
