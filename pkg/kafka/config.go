package kafka

// Config holds Kafka connection parameters shared by producers and consumers.
type Config struct {
	ConsumerGroup string

	// SASL configuration for authentication.
	SASLMechanism string // "PLAIN", "SCRAM-SHA-256" or "SCRAM-SHA-512"
	SASLUsername  string
	SASLPassword  string

	Brokers []string

	// TLS enables TLS for broker connections.
	TLS         bool
	SASLEnabled bool
}
