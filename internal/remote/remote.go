// Package remote holds the HTTP clients for calls between services. Base
// addresses come from a Resolver, normally backed by consul, so instances can
// move without reconfiguration. Response status classes map onto the error
// taxonomy: a 5xx (or an unreachable service) is RemoteUnavailable, a 4xx
// means the caller sent a bad id.
package remote

import (
	"fmt"
	"net/http"
	"time"

	consulapi "github.com/hashicorp/consul/api"
	"github.com/shikhasoumya1612/ecommerce/internal/consul"
	"github.com/shikhasoumya1612/ecommerce/pkg/apperr"
)

// Resolver turns a service name into a reachable base URL.
type Resolver interface {
	Resolve(service string) (string, error)
}

// ConsulResolver picks a healthy instance from the consul catalog per call.
type ConsulResolver struct {
	client *consulapi.Client
}

func NewConsulResolver(client *consulapi.Client) *ConsulResolver {
	return &ConsulResolver{client: client}
}

func (r *ConsulResolver) Resolve(service string) (string, error) {
	address, port, err := consul.GetServiceAddress(r.client, service)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("http://%s:%d", address, port), nil
}

// StaticResolver maps service names to fixed base URLs. Used in tests and in
// setups without consul.
type StaticResolver map[string]string

func (r StaticResolver) Resolve(service string) (string, error) {
	base, ok := r[service]
	if !ok {
		return "", fmt.Errorf("no address configured for service %s", service)
	}
	return base, nil
}

func defaultHTTPClient() *http.Client {
	return &http.Client{Timeout: 10 * time.Second}
}

// errUnavailable is the caller-facing error for a sibling that is down or
// unreachable.
func errUnavailable() error {
	return apperr.New(apperr.RemoteUnavailable, "Service down. Try again later.")
}
