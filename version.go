package nfa

import _ "embed"

// Version is the release of the library and the nfa binary.
//
//go:embed VERSION
var Version string
