package discovery

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/muurk/shoplist/internal/logging"
	"github.com/muurk/shoplist/internal/version"
)

const (
	// ServiceType is the mDNS service type of the API
	ServiceType = "_shoplist._tcp"

	// ServiceDomain is the mDNS domain
	ServiceDomain = "local."

	// DefaultScanTimeout is how long Scan listens for answers
	DefaultScanTimeout = 5 * time.Second

	// DefaultPort is assumed when an answer carries no port
	DefaultPort = 8080

	// drainWait bounds how long Scan waits for the resolver to close its channel
	drainWait = 500 * time.Millisecond
)

// ErrNoService is returned by First when nothing answered in time.
var ErrNoService = errors.New("no shoplist service found")

// Scanner browses for API servers
type Scanner struct {
	// Timeout bounds each browse
	Timeout time.Duration
}

// NewScanner creates a scanner with the default timeout
func NewScanner() *Scanner {
	return &Scanner{Timeout: DefaultScanTimeout}
}

// Scan collects every service that answers before the timeout or ctx ends.
func (s *Scanner) Scan(ctx context.Context) ([]*Service, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout())
	defer cancel()

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	entries := make(chan *zeroconf.ServiceEntry)
	var mu sync.Mutex
	services := make([]*Service, 0)
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		seen := make(map[string]bool)
		for entry := range entries {
			svc := parseServiceEntry(entry)
			if svc == nil || seen[svc.BaseURL()] {
				continue
			}
			seen[svc.BaseURL()] = true
			logging.Debug("Discovered service", zap.String("service", svc.String()))
			mu.Lock()
			services = append(services, svc)
			mu.Unlock()
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	<-ctx.Done()
	select {
	case <-drained:
	case <-time.After(drainWait):
	}

	mu.Lock()
	defer mu.Unlock()
	out := make([]*Service, len(services))
	copy(out, services)
	return out, nil
}

// First returns the first service to answer.
func (s *Scanner) First(ctx context.Context) (*Service, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout())
	defer cancel()

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	entries := make(chan *zeroconf.ServiceEntry)
	found := make(chan *Service, 1)
	go func() {
		for entry := range entries {
			if svc := parseServiceEntry(entry); svc != nil {
				select {
				case found <- svc:
				default:
				}
				cancel()
			}
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	select {
	case svc := <-found:
		return svc, nil
	case <-ctx.Done():
		select {
		case svc := <-found:
			return svc, nil
		default:
		}
		return nil, fmt.Errorf("%w within %s", ErrNoService, s.timeout())
	}
}

func (s *Scanner) timeout() time.Duration {
	if s.Timeout <= 0 {
		return DefaultScanTimeout
	}
	return s.Timeout
}

// parseServiceEntry converts a zeroconf answer. Returns nil when the answer
// has no usable address.
func parseServiceEntry(entry *zeroconf.ServiceEntry) *Service {
	if entry == nil {
		return nil
	}

	var ip string
	if len(entry.AddrIPv4) > 0 {
		ip = entry.AddrIPv4[0].String()
	} else if len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" {
		return nil
	}

	port := entry.Port
	if port == 0 {
		port = DefaultPort
	}

	metadata := make(map[string]string, len(entry.Text))
	for _, txt := range entry.Text {
		key, value, _ := strings.Cut(txt, "=")
		if key != "" {
			metadata[key] = value
		}
	}
	if p := metadata["path"]; p == "/" {
		metadata["path"] = ""
	}

	return &Service{
		Instance:     unescapeInstance(entry.Instance),
		Hostname:     entry.HostName,
		IP:           ip,
		Port:         port,
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}

// unescapeInstance undoes DNS label escaping of spaces.
func unescapeInstance(name string) string {
	return strings.ReplaceAll(name, `\ `, " ")
}

// Advertisement is a live mDNS registration.
type Advertisement struct {
	server *zeroconf.Server
}

// Shutdown withdraws the registration.
func (a *Advertisement) Shutdown() {
	if a != nil && a.server != nil {
		a.server.Shutdown()
	}
}

// DefaultInstanceName is "shoplist on <hostname>".
func DefaultInstanceName() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		return "shoplist"
	}
	return "shoplist on " + strings.TrimSuffix(host, ".local")
}

// Advertise registers the API on port. An empty instance uses DefaultInstanceName.
func Advertise(instance string, port int) (*Advertisement, error) {
	if instance == "" {
		instance = DefaultInstanceName()
	}

	server, err := zeroconf.Register(instance, ServiceType, ServiceDomain, port, TXTRecords(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to register mDNS service: %w", err)
	}

	logging.Info("Advertising API over mDNS",
		zap.String("instance", instance),
		zap.String("service", ServiceType),
		zap.Int("port", port),
	)
	return &Advertisement{server: server}, nil
}

// TXTRecords are published with every advertisement.
func TXTRecords() []string {
	return []string{"path=/", "version=" + version.Version}
}
