// Package config loads the optional .regexwith.yaml project file.
//
// Values in the file are defaults; command-line flags override them.
//
// Example:
//
//	version: "1"
//	packages: ["./..."]
//	output: regexwith_gen.go
//	strict: true
//	text_unmarshaler: false
//	watch:
//	  debounce_ms: 300
package config
