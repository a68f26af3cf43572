// Package constants holds shared environment and provider identifiers.
package constants

const (
	// EnvDevelop is the local development environment name.
	EnvDevelop = "develop"
	// EnvProduction is the production environment name.
	EnvProduction = "production"

	// PubSubProviderGoogle selects the Google Cloud Pub/Sub publisher.
	PubSubProviderGoogle = "google"
	// PubSubProviderLocal selects the local HTTP push publisher for development.
	PubSubProviderLocal = "local"
)
