package config

import (
	"strings"
	"time"
)

// parseEnv overlays environment variables. PORT is honoured for platforms
// that hand the listen port over that way; CLASSKEEPER_ADDR wins over it.
func parseEnv(config *Config, lookup func(string) (string, bool)) {
	if port, ok := lookup("PORT"); ok && port != "" {
		if strings.Contains(port, ":") {
			config.EndpointAddrHTTP = port
		} else {
			config.EndpointAddrHTTP = ":" + port
		}
	}

	vars := []struct {
		name string
		dst  *string
	}{
		{"CLASSKEEPER_ADDR", &config.EndpointAddrHTTP},
		{"CLASSKEEPER_GRPC_ADDR", &config.EndpointAddrGRPC},
		{"CLASSKEEPER_DB", &config.StorageBackend},
		{"DATABASE_URL", &config.DatabaseDSN},
		{"CLASSKEEPER_BADGER_PATH", &config.BadgerPath},
		{"CLASSKEEPER_SECRET", &config.SecretKey},
		{"S3_ROOT_USER", &config.S3RootUser},
		{"S3_ROOT_PASSWORD", &config.S3RootPassword},
		{"S3_BUCKET", &config.S3Bucket},
		{"S3_REGION", &config.S3Region},
		{"S3_BASE_ENDPOINT", &config.S3BaseEndpoint},
	}
	for _, v := range vars {
		if val, ok := lookup(v.name); ok && val != "" {
			*v.dst = val
		}
	}

	// unparsable or non-positive values keep the current validity
	if val, ok := lookup("CLASSKEEPER_TOKEN_TTL"); ok {
		if d, err := time.ParseDuration(val); err == nil && d > 0 {
			config.AccessTokenValidityDuration = d
		}
	}
}
