package device

import (
	"net"
	"os"
	"runtime"

	"warehouse-print-agent/internal/models"
)

// Info identifies the workstation hardware the agent runs on. The portal
// uses the MAC to pair a browser session with a physical station.
func Info() models.DeviceInfo {
	info := models.DeviceInfo{
		OS:      runtime.GOOS,
		Version: models.AgentVersion,
		MACs:    []string{},
	}

	if host, err := os.Hostname(); err == nil {
		info.Hostname = host
	}

	interfaces, err := net.Interfaces()
	if err != nil {
		return info
	}

	for _, iface := range interfaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		mac := iface.HardwareAddr.String()
		if mac == "" {
			continue
		}

		if !contains(info.MACs, mac) {
			info.MACs = append(info.MACs, mac)
		}

		// Prefer the primary wired/wireless interface name when the OS
		// exposes one; otherwise first found wins.
		isPriority := iface.Name == "en0" || iface.Name == "eth0"
		if info.MAC == "" || isPriority {
			info.MAC = mac
		}

		if info.IP == "" {
			addrs, _ := iface.Addrs()
			for _, addr := range addrs {
				if ipnet, ok := addr.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
					if ipnet.IP.To4() != nil {
						info.IP = ipnet.IP.String()
					}
				}
			}
		}
	}

	return info
}

func contains(slice []string, val string) bool {
	for _, item := range slice {
		if item == val {
			return true
		}
	}
	return false
}
