package gateway

import (
	ntsmodels "github.com/alovak/nts-userdata/nts/models"
)

// Config is a configuration for the gateway application
type Config struct {
	HTTPAddr string
	// RepoBackend selects where references are kept: "mem" or "pg".
	RepoBackend string
	DBDSN       string
	// TimeZone is an IANA timezone name the wire timestamps are rendered in
	// (e.g., "America/Chicago"). Empty means UTC.
	TimeZone string
	// Acceptor fills in the acceptor fields a request leaves empty.
	Acceptor ntsmodels.AcceptorConfig
}

func DefaultConfig() *Config {
	return &Config{
		HTTPAddr:    "localhost:9090",
		RepoBackend: "mem",
		Acceptor: ntsmodels.AcceptorConfig{
			TerminalCapability:   "2",
			OperatingEnvironment: ntsmodels.Attended,
		},
	}
}

// ConfigFromEnv returns DefaultConfig overridden by the environment.
func ConfigFromEnv() *Config {
	c := DefaultConfig()
	c.HTTPAddr = getenv("HTTP_ADDR", c.HTTPAddr)
	c.RepoBackend = getenv("REPO_BACKEND", c.RepoBackend)
	c.DBDSN = getenv("DB_DSN", c.DBDSN)
	c.TimeZone = getenv("NTS_TZ", c.TimeZone)
	c.Acceptor.TerminalCapability = getenv("TERMINAL_CAPABILITY", c.Acceptor.TerminalCapability)
	c.Acceptor.PostalCode = getenv("POSTAL_CODE", c.Acceptor.PostalCode)
	c.Acceptor.OperatingEnvironment = ntsmodels.OperatingEnvironment(getenv("OPERATING_ENV", string(c.Acceptor.OperatingEnvironment)))
	c.Acceptor.AvailableProductCapability = getenv("PRODUCT_CAPABILITY", c.Acceptor.AvailableProductCapability)
	return c
}
