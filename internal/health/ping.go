package health

import "context"

// HealthPinger is implemented by store drivers and other long-lived components
// that can cheaply verify their backing connection. HealthPing returns nil
// when the component can serve requests.
type HealthPinger interface {
	HealthPing(ctx context.Context) error
}
