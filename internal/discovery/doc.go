// Package discovery finds and advertises shopping list API servers with
// multicast DNS.
//
// Servers register an instance of the "_shoplist._tcp" service; clients
// browse for it when no base URL is configured and use the first answer.
//
// # Usage Example
//
//	scanner := discovery.NewScanner()
//	scanner.Timeout = 3 * time.Second
//
//	services, err := scanner.Scan(ctx)
//	if err != nil {
//	    return err
//	}
//	for _, svc := range services {
//	    fmt.Println(svc.Instance, svc.BaseURL())
//	}
//
// # Network Requirements
//
// Multicast must be permitted on the interface and UDP port 5353 must not be
// filtered. Clients and servers must share a network segment.
package discovery
