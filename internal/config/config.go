// Copyright 2026 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config reads benchview settings from a config file, the
// environment and command-line flags, in increasing priority.
//
// Environment variables are the upper-cased keys with a BENCHVIEW_
// prefix and dots replaced by underscores, e.g. BENCHVIEW_LOG_LEVEL.
package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/squashbench/benchview/benchdata"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"
)

// Config holds all settings.
type Config struct {
	Addr    string        `mapstructure:"addr"`
	Source  string        `mapstructure:"source"`
	Width   int           `mapstructure:"width"`
	Timeout time.Duration `mapstructure:"timeout"`
	// Token is a static OAuth2 bearer token for HTTP(S) sources.
	Token string `mapstructure:"token"`

	Cache CacheConfig `mapstructure:"cache"`
	Log   LogConfig   `mapstructure:"log"`
	GCS   GCSConfig   `mapstructure:"gcs"`
	S3    S3Config    `mapstructure:"s3"`
}

// CacheConfig configures the chart image cache.
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// LogConfig configures the logger. An empty File logs to stderr;
// otherwise the file is rotated at MaxSize megabytes.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// GCSConfig configures gs:// sources.
type GCSConfig struct {
	// Credentials is a service account key file.
	Credentials string `mapstructure:"credentials"`
}

// S3Config configures s3:// sources. Empty fields use the AWS SDK
// defaults.
type S3Config struct {
	Region          string `mapstructure:"region"`
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
}

// SetDefaults sets the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("addr", "localhost:8080")
	v.SetDefault("source", "data.json")
	v.SetDefault("width", 960)
	v.SetDefault("timeout", benchdata.DefaultTimeout)
	v.SetDefault("token", "")

	v.SetDefault("cache.ttl", "10m")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_backups", 7)
	v.SetDefault("log.max_age", 30)
	v.SetDefault("log.compress", true)

	v.SetDefault("gcs.credentials", "")

	v.SetDefault("s3.region", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
}

// Load reads the configuration. file may be empty. Flags of fs that
// were set on the command line override everything else; a flag's
// name is its config key.
func Load(file string, fs *flag.FlagSet) (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix("BENCHVIEW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}
	if fs != nil {
		fs.Visit(func(f *flag.Flag) {
			v.Set(f.Name, f.Value.String())
		})
	}

	c := new(Config)
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if c.Width <= 0 {
		return nil, fmt.Errorf("width must be positive, got %d", c.Width)
	}
	return c, nil
}

// Loader returns a benchdata.Loader configured by c.
func (c *Config) Loader() *benchdata.Loader {
	l := &benchdata.Loader{
		Timeout: c.Timeout,
		S3: benchdata.S3Config{
			Region:          c.S3.Region,
			Endpoint:        c.S3.Endpoint,
			AccessKeyID:     c.S3.AccessKeyID,
			SecretAccessKey: c.S3.SecretAccessKey,
		},
	}
	if c.Token != "" {
		l.TokenSource = oauth2.StaticTokenSource(&oauth2.Token{AccessToken: c.Token})
	}
	if c.GCS.Credentials != "" {
		l.GCSOptions = append(l.GCSOptions, option.WithCredentialsFile(c.GCS.Credentials))
	}
	return l
}
