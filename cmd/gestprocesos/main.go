// Package main starts the gestprocesos server.
package main

import "github.com/grupovilla/gestprocesos/pkg/cmd"

func main() {
	if err := cmd.Execute(); err != nil {
		panic(err)
	}
}
