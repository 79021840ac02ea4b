package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/dmitrijs2005/classkeeper/internal/timex"
	"gopkg.in/yaml.v2"
)

// FileConfig is the on-disk shape of the config file. Durations accept
// strings such as "15m" or integer nanoseconds. Zero values leave the
// corresponding Config field untouched, as do non-positive durations and sizes.
type FileConfig struct {
	EndpointAddrHTTP            string         `json:"endpoint_addr_http" toml:"endpoint_addr_http" yaml:"endpoint_addr_http"`
	EndpointAddrGRPC            string         `json:"endpoint_addr_grpc" toml:"endpoint_addr_grpc" yaml:"endpoint_addr_grpc"`
	StorageBackend              string         `json:"storage_backend" toml:"storage_backend" yaml:"storage_backend"`
	DatabaseDSN                 string         `json:"database_dsn" toml:"database_dsn" yaml:"database_dsn"`
	BadgerPath                  string         `json:"badger_path" toml:"badger_path" yaml:"badger_path"`
	SecretKey                   string         `json:"secret_key" toml:"secret_key" yaml:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration" toml:"access_token_validity_duration" yaml:"access_token_validity_duration"`
	MaxBodyBytes                int64          `json:"max_body_bytes" toml:"max_body_bytes" yaml:"max_body_bytes"`
	HealthCheckInterval         timex.Duration `json:"health_check_interval" toml:"health_check_interval" yaml:"health_check_interval"`
	S3RootUser                  string         `json:"s3_root_user" toml:"s3_root_user" yaml:"s3_root_user"`
	S3RootPassword              string         `json:"s3_root_password" toml:"s3_root_password" yaml:"s3_root_password"`
	S3Bucket                    string         `json:"s3_bucket" toml:"s3_bucket" yaml:"s3_bucket"`
	S3Region                    string         `json:"s3_region" toml:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint              string         `json:"s3_base_endpoint" toml:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	UploadURLValidity           timex.Duration `json:"upload_url_validity" toml:"upload_url_validity" yaml:"upload_url_validity"`
}

// parseFile reads path and overlays its values onto config. The format is
// chosen by extension: .toml, .yaml/.yml, anything else is JSON.
func parseFile(config *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	fc := &FileConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, fc)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, fc)
	default:
		err = json.Unmarshal(data, fc)
	}
	if err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	fc.apply(config)
	return nil
}

func (fc *FileConfig) apply(config *Config) {
	setString(&config.EndpointAddrHTTP, fc.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, fc.EndpointAddrGRPC)
	setString(&config.StorageBackend, fc.StorageBackend)
	setString(&config.DatabaseDSN, fc.DatabaseDSN)
	setString(&config.BadgerPath, fc.BadgerPath)
	setString(&config.SecretKey, fc.SecretKey)
	setString(&config.S3RootUser, fc.S3RootUser)
	setString(&config.S3RootPassword, fc.S3RootPassword)
	setString(&config.S3Bucket, fc.S3Bucket)
	setString(&config.S3Region, fc.S3Region)
	setString(&config.S3BaseEndpoint, fc.S3BaseEndpoint)

	setDuration(&config.AccessTokenValidityDuration, fc.AccessTokenValidityDuration.Duration)
	setDuration(&config.HealthCheckInterval, fc.HealthCheckInterval.Duration)
	setDuration(&config.UploadURLValidity, fc.UploadURLValidity.Duration)
	if fc.MaxBodyBytes > 0 {
		config.MaxBodyBytes = fc.MaxBodyBytes
	}
}

// setDuration keeps the current value unless d is positive.
func setDuration(dst *time.Duration, d time.Duration) {
	if d > 0 {
		*dst = d
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
