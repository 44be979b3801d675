// Package consul wraps the handful of consul operations the services need:
// registering themselves at startup and resolving a healthy instance of a
// sibling service before an outbound call.
package consul

import (
	"fmt"
	"os"

	consulapi "github.com/hashicorp/consul/api"
)

// NewClient builds a consul client from CONSUL_HTTP_ADDR (or the library
// default of localhost:8500).
func NewClient() (*consulapi.Client, error) {
	config := consulapi.DefaultConfig()
	if addr := os.Getenv("CONSUL_HTTP_ADDR"); addr != "" {
		config.Address = addr
	}
	client, err := consulapi.NewClient(config)
	if err != nil {
		return nil, fmt.Errorf("creating consul client: %w", err)
	}
	return client, nil
}

// RegisterService registers this process under the given service name so
// siblings can discover it.
func RegisterService(client *consulapi.Client, name string, serviceID string, address string, port int) error {
	registration := &consulapi.AgentServiceRegistration{
		ID:      serviceID,
		Name:    name,
		Address: address,
		Port:    port,
		Check: &consulapi.AgentServiceCheck{
			HTTP:                           fmt.Sprintf("http://%s:%d/ping", address, port),
			Interval:                       "10s",
			Timeout:                        "2s",
			DeregisterCriticalServiceAfter: "1m",
		},
	}
	if err := client.Agent().ServiceRegister(registration); err != nil {
		return fmt.Errorf("registering service %s: %w", name, err)
	}
	return nil
}

// GetServiceAddress resolves one healthy instance of the named service.
func GetServiceAddress(client *consulapi.Client, name string) (string, int, error) {
	entries, _, err := client.Health().Service(name, "", true, nil)
	if err != nil {
		return "", 0, fmt.Errorf("querying consul for %s: %w", name, err)
	}
	if len(entries) == 0 {
		return "", 0, fmt.Errorf("no healthy instances of %s", name)
	}

	service := entries[0].Service
	address := service.Address
	if address == "" {
		address = entries[0].Node.Address
	}
	return address, service.Port, nil
}
