package kafka

import (
	"testing"
)

func TestNewProducer(t *testing.T) {
	cfg := Config{
		Brokers:       []string{"localhost:9092", "localhost:9093"},
		ConsumerGroup: "risk-scoring",
	}

	p := NewProducer(cfg)
	if p == nil {
		t.Fatal("expected non-nil producer")
	}
	if len(p.brokers) != 2 {
		t.Fatalf("expected 2 brokers, got %d", len(p.brokers))
	}
	if len(p.writers) != 0 {
		t.Errorf("expected empty writers map, got %d entries", len(p.writers))
	}
}

func TestGetOrCreateWriter(t *testing.T) {
	p := NewProducer(Config{Brokers: []string{"localhost:9092"}})

	w1 := p.getOrCreateWriter("attendance.events")
	if w1 == nil {
		t.Fatal("expected non-nil writer")
	}

	// Same topic should return the same writer instance.
	w2 := p.getOrCreateWriter("attendance.events")
	if w1 != w2 {
		t.Error("expected same writer instance for same topic")
	}

	w3 := p.getOrCreateWriter("risk.events")
	if w1 == w3 {
		t.Error("expected different writer instance for different topic")
	}

	if len(p.writers) != 2 {
		t.Errorf("expected 2 writers, got %d", len(p.writers))
	}
}

func TestProducerClose(t *testing.T) {
	p := NewProducer(Config{Brokers: []string{"localhost:9092"}})
	p.getOrCreateWriter("risk.events")

	if err := p.Close(); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}
	if len(p.writers) != 0 {
		t.Errorf("expected writers map cleared after close, got %d entries", len(p.writers))
	}
}
