package discovery

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Service is a discovered API server
type Service struct {
	// Instance is the advertised instance name, e.g. "shoplist on kitchen-pi"
	Instance string

	// Hostname is the mDNS hostname, e.g. "kitchen-pi.local."
	Hostname string

	IP   string
	Port int

	// Metadata holds the TXT record pairs ("path", "version")
	Metadata map[string]string

	DiscoveredAt time.Time
}

// String returns a human-readable description
func (s *Service) String() string {
	return fmt.Sprintf("%s (%s) at %s", s.Instance, s.Hostname, net.JoinHostPort(s.IP, strconv.Itoa(s.Port)))
}

// BaseURL returns the API root for the service
func (s *Service) BaseURL() string {
	return "http://" + net.JoinHostPort(s.IP, strconv.Itoa(s.Port)) + s.GetMetadata("path")
}

// GetMetadata returns a TXT value, or "" when absent
func (s *Service) GetMetadata(key string) string {
	if s.Metadata == nil {
		return ""
	}
	return s.Metadata[key]
}
