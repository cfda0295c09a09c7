// Package config holds the tool settings: editor tab policy, C++ file
// suffix mapping, section toggling tags and logging.
//
// Settings load from a TOML file with defaults applied for anything not
// set. Scripts read and write ad-hoc values through a JSON-backed Store
// addressed by dotted paths.
package config
