// Package constants defines shared domain-level constants.
package constants

// Pub/Sub provider names selected by configuration.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)
