package build

import "errors"

// Sentinel errors classifying pipeline failures. They are wrapped with
// context at the call site.
var (
	ErrDiscovery = errors.New("docsite: discovery error")
	ErrEmit      = errors.New("docsite: emit error")
	ErrManifest  = errors.New("docsite: manifest error")
)
