package main

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	imap "github.com/imapwire/codec"
	"github.com/imapwire/codec/wire"
)

// TraceConfig is the on-disk shape of the demo config file: which role to
// encode as and which capabilities the peer negotiated, from which the
// client/server options are derived the same way a live session would.
type TraceConfig struct {
	Role         string   `yaml:"role"`
	Capabilities []string `yaml:"capabilities"`
}

func loadConfig(path string) (wire.Mode, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return wire.Mode{}, eris.Wrapf(err, "reading config file %q", path)
	}
	var cfg TraceConfig
	if err := yaml.Unmarshal(f, &cfg); err != nil {
		return wire.Mode{}, eris.Wrapf(err, "parsing config file %q", path)
	}

	caps := make([]imap.Cap, len(cfg.Capabilities))
	for i, c := range cfg.Capabilities {
		caps[i] = imap.Cap(c)
	}

	switch cfg.Role {
	case "", "client":
		return wire.ClientMode(wire.ClientOptionsFromCapabilities(caps)), nil
	case "server":
		return wire.ServerMode(wire.ServerOptionsFromCapabilities(caps)), nil
	default:
		return wire.Mode{}, eris.Errorf("unknown role %q in config file %q", cfg.Role, path)
	}
}
