// Package main provides the CLI entrypoint for shopfront.
package main

func main() {
	Execute()
}
