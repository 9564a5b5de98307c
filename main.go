// Package main is the entry point for the fairwindsk-settings application
package main

import (
	"github.com/OpenFairWind/signalk-fairwindsk-settings/cmd"
)

func main() {
	cmd.Execute()
}
