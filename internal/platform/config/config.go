package config

import (
	"os"
	"time"
)

// Server captures process level configuration for the API server and the
// normalization pipelines.
type Server struct {
	Addr        string
	PostgresDSN string
	RedisURL    string

	// CurrentTerm is the assembly term label the pipeline is processing;
	// first-term members from the current-members feed and proposer name
	// resolution both key against it.
	CurrentTerm string
	// BillEraCode prefixes short bill numbers when canonicalizing them for
	// the alternative-bill table.
	BillEraCode string

	StatsCacheTTL time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("ASSEMBLY_API_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	term := os.Getenv("ASSEMBLY_CURRENT_TERM")
	if term == "" {
		term = "22"
	}

	eraCode := os.Getenv("ASSEMBLY_BILL_ERA_CODE")
	if eraCode == "" {
		eraCode = term
	}

	ttl := 5 * time.Minute
	if v := os.Getenv("ASSEMBLY_STATS_CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			ttl = parsed
		}
	}

	return Server{
		Addr:          addr,
		PostgresDSN:   os.Getenv("ASSEMBLY_POSTGRES_DSN"),
		RedisURL:      os.Getenv("ASSEMBLY_REDIS_URL"),
		CurrentTerm:   term,
		BillEraCode:   eraCode,
		StatsCacheTTL: ttl,
	}
}
