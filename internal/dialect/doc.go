// Package dialect spots lines written in another language's syntax
// (Python, Go, C-like) among the lines the parser rejected, and turns them
// into friendly hints with a PixelWallE rewrite where one is mechanical.
package dialect
