//go:build tools

package tools

// This file tracks versions of CLI tool dependencies.
// It is not compiled into the binary.
//
// - github.com/matryer/moq (fakes for consumer-side interfaces)
// - github.com/a-h/templ/cmd/templ (not used: components are hand-written templ.ComponentFunc)
// - github.com/pressly/goose/v3/cmd/goose (declared via the tool directive in go.mod)
