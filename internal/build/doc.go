// Package build provides the canonical build pipeline of docsite: validate
// the configuration, discover pages, optionally generate the sidebar, build the
// page manifest, skip when neither configuration nor content changed, emit
// engine files and record the outcome. The CLI and the preview server both
// route through Service.
package build
