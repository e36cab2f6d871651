// Package messagequeue publishes admin audit events for external
// consumers (reporting, alerting). Publishing is best-effort: the admin
// flows never fail because the broker is down.
package messagequeue

// Publisher defines the interface for event publishing services.
type Publisher interface {
	Publish(queueName string, body []byte) error
	Close() error
}
