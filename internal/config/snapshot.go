package config

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Snapshot computes a stable hash of the output-affecting configuration.
// Logging settings are excluded so that changing verbosity does not force a rebuild.
// Callers should hash normalized and defaulted values, as returned by New, Parse and Load.
func (c *SiteConfig) Snapshot() string {
	if c == nil {
		return ""
	}
	cp := *c
	cp.Logging = LoggingConfig{}
	// encoding/json sorts map keys, so the canonical form is stable.
	data, err := json.Marshal(&cp)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
