// Package templates holds the HTML components served by the web package.
//
// Components are written in .templ files; the _templ.go files next to them
// are produced by `templ generate` and must not be edited by hand.
package templates

//go:generate templ generate
