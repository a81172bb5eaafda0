/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package rconfig

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github/sabouaram/reactorkit/httpd"
	"github/sabouaram/reactorkit/pool"
	"github/sabouaram/reactorkit/rerr"
)

var validate = validator.New()

// PoolConfig sizes the worker pool backing asynchronous RPC dispatch.
type PoolConfig struct {
	Workers  int `mapstructure:"workers" validate:"gte=0"`
	Capacity int `mapstructure:"capacity" validate:"gte=0"`
}

// New builds a *pool.Pool from c.
func (c PoolConfig) New() *pool.Pool {
	return pool.New(c.Workers, c.Capacity)
}

func (c PoolConfig) withDefaults() PoolConfig {
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Capacity <= 0 {
		c.Capacity = c.Workers * 4
	}
	return c
}

// RPCConfig carries the bind addresses for the transports that run outside
// httpd: the proprietary binary protocol and JSON-RPC over a raw TCP
// connection. XML-RPC and JSON-RPC over HTTP instead ride on an HTTPDConfig
// entry's routes.
type RPCConfig struct {
	BinaryAddress string `mapstructure:"binary_address"`
	JSONAddress   string `mapstructure:"json_address"`
}

// HTTPDConfig is the on-disk shape of one httpd.Config listener.
type HTTPDConfig struct {
	Name             string        `mapstructure:"name"`
	Bindable         string        `mapstructure:"bindable" validate:"required"`
	Expose           string        `mapstructure:"expose"`
	Disable          bool          `mapstructure:"disable"`
	TLS              *TLSConfig    `mapstructure:"tls" validate:"omitempty"`
	ReadTimeout      time.Duration `mapstructure:"read_timeout"`
	WriteTimeout     time.Duration `mapstructure:"write_timeout"`
	KeepAliveTimeout time.Duration `mapstructure:"keep_alive_timeout"`
}

// Build turns c into an httpd.Config, loading TLS material if configured.
func (c HTTPDConfig) Build() (httpd.Config, error) {
	cfg := httpd.Config{
		Name:             c.Name,
		Bindable:         c.Bindable,
		Expose:           c.Expose,
		Disable:          c.Disable,
		ReadTimeout:      c.ReadTimeout,
		WriteTimeout:     c.WriteTimeout,
		KeepAliveTimeout: c.KeepAliveTimeout,
	}

	if c.TLS != nil {
		t, err := c.TLS.Build()
		if err != nil {
			return httpd.Config{}, err
		}
		cfg.TLS = t
	}

	return cfg, nil
}

// Config is the full, validated configuration for one reactorkit process.
type Config struct {
	Pool  PoolConfig    `mapstructure:"pool"`
	RPC   RPCConfig     `mapstructure:"rpc"`
	HTTPD []HTTPDConfig `mapstructure:"httpd" validate:"dive"`
}

func (c Config) withDefaults() Config {
	c.Pool = c.Pool.withDefaults()
	return c
}

// Validate checks struct tag constraints (required fields, enumerations,
// cross-field requirements) and reports every violation it finds.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return rerr.Wrap(rerr.KindLogic, "rconfig: invalid configuration", err)
	}
	return nil
}

// Load parses data (in the given viper format: "yaml", "json", "toml", ...)
// after expanding environment references per ExpandEnv, decodes it into a
// Config, applies defaults and validates the result.
func Load(data []byte, format string) (*Config, error) {
	v := viper.New()
	v.SetConfigType(format)

	if err := v.ReadConfig(bytes.NewReader([]byte(ExpandEnv(string(data))))); err != nil {
		return nil, rerr.Wrap(rerr.KindSerialization, "rconfig: parse configuration", err)
	}

	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, rerr.Wrap(rerr.KindSerialization, "rconfig: decode configuration", err)
	}

	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadFile reads path and calls Load, inferring the viper format from the
// file extension (defaulting to "yaml" when there is none).
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, rerr.Wrap(rerr.KindIO, "rconfig: read configuration file", err)
	}

	format := strings.TrimPrefix(filepath.Ext(path), ".")
	if format == "" {
		format = "yaml"
	}

	return Load(data, format)
}
