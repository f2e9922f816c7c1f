package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load returned nil config")
	}
	if cfg.HTTPAddr != ":5000" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":5000")
	}
	if cfg.IngestAddr != ":4000" {
		t.Errorf("IngestAddr = %q, want %q", cfg.IngestAddr, ":4000")
	}
	if cfg.TicketsKafkaTopic != "tickets-stream" {
		t.Errorf("TicketsKafkaTopic = %q, want %q", cfg.TicketsKafkaTopic, "tickets-stream")
	}
	if cfg.KafkaGroupID != "civic-ticket-consumer" {
		t.Errorf("KafkaGroupID = %q, want %q", cfg.KafkaGroupID, "civic-ticket-consumer")
	}
	if cfg.CityName != "bangalore" {
		t.Errorf("CityName = %q, want %q", cfg.CityName, "bangalore")
	}
	if cfg.GeocodeBaseURL != "https://nominatim.openstreetmap.org" {
		t.Errorf("GeocodeBaseURL = %q, want nominatim default", cfg.GeocodeBaseURL)
	}
	if cfg.GeocodeUserAgent != "CivicReportingSystem/1.0" {
		t.Errorf("GeocodeUserAgent = %q, want default", cfg.GeocodeUserAgent)
	}
}

func TestLoad_EnvVarOverride(t *testing.T) {
	os.Clearenv()
	os.Setenv("HTTP_ADDR", ":9090")
	os.Setenv("CITY_NAME", "pune")
	os.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":9090")
	}
	if cfg.CityName != "pune" {
		t.Errorf("CityName = %q, want %q", cfg.CityName, "pune")
	}
	brokers := cfg.KafkaBrokersList()
	if len(brokers) != 2 || brokers[0] != "k1:9092" || brokers[1] != "k2:9092" {
		t.Errorf("KafkaBrokersList = %v, want [k1:9092 k2:9092]", brokers)
	}
}

func TestJWTLifetime(t *testing.T) {
	cfg := &Config{JWTTTL: "1h"}
	if got := cfg.JWTLifetime(); got != time.Hour {
		t.Errorf("JWTLifetime = %v, want 1h", got)
	}
	cfg = &Config{JWTTTL: "garbage"}
	if got := cfg.JWTLifetime(); got != 24*time.Hour {
		t.Errorf("JWTLifetime fallback = %v, want 24h", got)
	}
}

func TestGeocodeAttemptTimeout(t *testing.T) {
	cfg := &Config{GeocodeTimeout: ""}
	if got := cfg.GeocodeAttemptTimeout(); got != 5*time.Second {
		t.Errorf("GeocodeAttemptTimeout fallback = %v, want 5s", got)
	}
}

func TestCityAliasList(t *testing.T) {
	cfg := &Config{CityName: "bangalore"}
	got := cfg.CityAliasList()
	if len(got) != 2 || got[0] != "bangalore" || got[1] != "bengaluru" {
		t.Errorf("CityAliasList = %v, want [bangalore bengaluru]", got)
	}

	cfg = &Config{CityName: "Pune"}
	got = cfg.CityAliasList()
	if len(got) != 1 || got[0] != "pune" {
		t.Errorf("CityAliasList = %v, want [pune]", got)
	}

	cfg = &Config{CityName: "mysore", CityAliases: "Mysore, Mysuru"}
	got = cfg.CityAliasList()
	if len(got) != 2 || got[0] != "mysore" || got[1] != "mysuru" {
		t.Errorf("CityAliasList = %v, want [mysore mysuru]", got)
	}
}
