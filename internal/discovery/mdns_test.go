package discovery

import (
	"net"
	"strings"
	"testing"
	"time"

	"github.com/grandcat/zeroconf"
)

func TestParseServiceEntry(t *testing.T) {
	tests := []struct {
		name         string
		entry        *zeroconf.ServiceEntry
		wantNil      bool
		wantIP       string
		wantPort     int
		wantInstance string
		wantBaseURL  string
	}{
		{
			name: "IPv4 with path",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: `shoplist\ on\ kitchen-pi`},
				HostName:      "kitchen-pi.local.",
				Port:          8080,
				AddrIPv4:      []net.IP{net.ParseIP("192.168.1.20")},
				Text:          []string{"path=/", "version=v0.3.0"},
			},
			wantIP:       "192.168.1.20",
			wantPort:     8080,
			wantInstance: "shoplist on kitchen-pi",
			wantBaseURL:  "http://192.168.1.20:8080",
		},
		{
			name: "no port defaults",
			entry: &zeroconf.ServiceEntry{
				HostName: "pantry.local.",
				AddrIPv4: []net.IP{net.ParseIP("10.0.0.5")},
			},
			wantIP:      "10.0.0.5",
			wantPort:    DefaultPort,
			wantBaseURL: "http://10.0.0.5:8080",
		},
		{
			name: "IPv6 fallback",
			entry: &zeroconf.ServiceEntry{
				HostName: "pantry.local.",
				Port:     9000,
				AddrIPv6: []net.IP{net.ParseIP("fe80::1")},
			},
			wantIP:      "fe80::1",
			wantPort:    9000,
			wantBaseURL: "http://[fe80::1]:9000",
		},
		{
			name: "API mounted under a prefix",
			entry: &zeroconf.ServiceEntry{
				HostName: "nas.local.",
				Port:     80,
				AddrIPv4: []net.IP{net.ParseIP("192.168.1.2")},
				Text:     []string{"path=/shoplist"},
			},
			wantIP:      "192.168.1.2",
			wantPort:    80,
			wantBaseURL: "http://192.168.1.2:80/shoplist",
		},
		{
			name: "no address",
			entry: &zeroconf.ServiceEntry{
				HostName: "ghost.local.",
				Port:     8080,
			},
			wantNil: true,
		},
		{
			name:    "nil entry",
			entry:   nil,
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := parseServiceEntry(tt.entry)
			if tt.wantNil {
				if svc != nil {
					t.Errorf("parseServiceEntry() = %v, want nil", svc)
				}
				return
			}
			if svc == nil {
				t.Fatal("parseServiceEntry() = nil, want service")
			}
			if svc.IP != tt.wantIP {
				t.Errorf("IP = %q, want %q", svc.IP, tt.wantIP)
			}
			if svc.Port != tt.wantPort {
				t.Errorf("Port = %d, want %d", svc.Port, tt.wantPort)
			}
			if svc.Instance != tt.wantInstance {
				t.Errorf("Instance = %q, want %q", svc.Instance, tt.wantInstance)
			}
			if got := svc.BaseURL(); got != tt.wantBaseURL {
				t.Errorf("BaseURL() = %q, want %q", got, tt.wantBaseURL)
			}
			if svc.DiscoveredAt.IsZero() {
				t.Error("DiscoveredAt should be set")
			}
		})
	}
}

func TestParseServiceEntry_Metadata(t *testing.T) {
	svc := parseServiceEntry(&zeroconf.ServiceEntry{
		AddrIPv4: []net.IP{net.ParseIP("10.0.0.5")},
		Text:     []string{"version=v0.3.0", "flag", "=orphan"},
	})

	if got := svc.GetMetadata("version"); got != "v0.3.0" {
		t.Errorf("version = %q, want v0.3.0", got)
	}
	if _, ok := svc.Metadata["flag"]; !ok {
		t.Error("key without value should be kept")
	}
	if _, ok := svc.Metadata[""]; ok {
		t.Error("empty key should be skipped")
	}
}

func TestService_String(t *testing.T) {
	svc := &Service{Instance: "shoplist on pi", Hostname: "pi.local.", IP: "192.168.1.20", Port: 8080}
	want := "shoplist on pi (pi.local.) at 192.168.1.20:8080"
	if got := svc.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestService_GetMetadata_NilMap(t *testing.T) {
	svc := &Service{}
	if got := svc.GetMetadata("anything"); got != "" {
		t.Errorf("GetMetadata() with nil map = %q, want empty", got)
	}
}

func TestTXTRecords(t *testing.T) {
	txt := TXTRecords()
	if len(txt) != 2 || txt[0] != "path=/" || !strings.HasPrefix(txt[1], "version=") {
		t.Errorf("TXTRecords() = %v", txt)
	}
}

func TestDefaultInstanceName(t *testing.T) {
	if name := DefaultInstanceName(); !strings.HasPrefix(name, "shoplist") {
		t.Errorf("DefaultInstanceName() = %q, want shoplist prefix", name)
	}
}

func TestScanner_Timeout(t *testing.T) {
	if got := NewScanner().timeout(); got != DefaultScanTimeout {
		t.Errorf("timeout() = %v, want %v", got, DefaultScanTimeout)
	}
	s := &Scanner{Timeout: time.Second}
	if got := s.timeout(); got != time.Second {
		t.Errorf("timeout() = %v, want 1s", got)
	}
	if got := (&Scanner{}).timeout(); got != DefaultScanTimeout {
		t.Errorf("zero timeout should fall back to default, got %v", got)
	}
}
