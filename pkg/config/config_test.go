package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		StorageDriver:     StorageMongo,
		MongoURI:          DefaultMongoURI,
		MongoDatabaseName: DefaultMongoDatabaseName,
		MongoConnTimeout:  DefaultMongoConnTimeout,
		PostgresDSN:       DefaultPostgresDSN,
		Port:              DefaultPort,
		AuthSecret:        "0123456789abcdef",
		AuthTokenTTL:      DefaultAuthTokenTTL,
		AuthIssuer:        DefaultAuthIssuer,
		CORSOrigins:       []string{"*"},
		RequestTimeout:    DefaultRequestTimeout,
		MaxRequestSize:    DefaultMaxRequestSize,
		ReadTimeout:       DefaultReadTimeout,
		WriteTimeout:      DefaultWriteTimeout,
		IdleTimeout:       DefaultIdleTimeout,
		ShutdownTimeout:   DefaultShutdownTimeout,
		BookingLockTTL:    DefaultBookingLockTTL,
		EventsTopic:       DefaultEventsTopic,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "postgres driver", mutate: func(c *Config) { c.StorageDriver = StoragePostgres }},
		{name: "auth secret may be unset", mutate: func(c *Config) { c.AuthSecret = "" }},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Port = "70000" },
			wantErr: "Port must be between 1 and 65535",
		},
		{
			name:    "unknown driver",
			mutate:  func(c *Config) { c.StorageDriver = "sqlite" },
			wantErr: "StorageDriver must be one of",
		},
		{
			name:    "mongo uri scheme",
			mutate:  func(c *Config) { c.MongoURI = "http://localhost" },
			wantErr: "MongoURI must start with",
		},
		{
			name: "postgres dsn scheme",
			mutate: func(c *Config) {
				c.StorageDriver = StoragePostgres
				c.PostgresDSN = "host=localhost"
			},
			wantErr: "PostgresDSN must start with",
		},
		{
			name:    "short auth secret",
			mutate:  func(c *Config) { c.AuthSecret = "short" },
			wantErr: "AuthSecret must be at least 16 bytes",
		},
		{
			name:    "non-positive lock ttl",
			mutate:  func(c *Config) { c.BookingLockTTL = 0 },
			wantErr: "BookingLockTTL must be positive",
		},
		{
			name: "events without topic",
			mutate: func(c *Config) {
				c.EventsEnabled = true
				c.EventsTopic = ""
			},
			wantErr: "EventsTopic cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := validConfig()
	cfg.RequestTimeout = 0
	cfg.WriteTimeout = -time.Second

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "1. RequestTimeout") || !strings.Contains(err.Error(), "2. WriteTimeout") {
		t.Errorf("expected numbered list of problems, got %q", err.Error())
	}
}

func TestRedaction(t *testing.T) {
	if got := redactMongoURI("mongodb://root:hunter2@db:27017/wardrobe"); strings.Contains(got, "hunter2") {
		t.Errorf("mongo password leaked: %s", got)
	}
	if got := redactPostgresDSN("postgres://wardrobe:hunter2@db:5432/wardrobe?sslmode=disable"); strings.Contains(got, "hunter2") {
		t.Errorf("postgres password leaked: %s", got)
	}
	if got := redactPostgresDSN("postgres://db:5432/wardrobe"); got != "postgres://db:5432/wardrobe" {
		t.Errorf("dsn without credentials should be untouched, got %s", got)
	}
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("WARDROBE_TEST_LIST", " https://a.example , ,https://b.example")
	t.Setenv("WARDROBE_TEST_BOOL", "true")
	t.Setenv("WARDROBE_TEST_DURATION", "nonsense")

	if got := getEnvList("WARDROBE_TEST_LIST", "*"); len(got) != 2 || got[1] != "https://b.example" {
		t.Errorf("unexpected list %v", got)
	}
	if !getEnvBool("WARDROBE_TEST_BOOL", false) {
		t.Errorf("expected true")
	}
	if got := getEnvDuration("WARDROBE_TEST_DURATION", 3*time.Second); got != 3*time.Second {
		t.Errorf("unparseable duration should fall back, got %s", got)
	}
}
