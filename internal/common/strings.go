package common

// UnknownStr is the String() value of enum-like types outside their range.
const UnknownStr = "unknown"

// GeneratedHeader is the first line of every file written by the generator.
const GeneratedHeader = "// Code generated by regexwith. DO NOT EDIT."

// DefaultOutput is the per-package output file name.
const DefaultOutput = "regexwith_gen.go"
