// Command hwforecast fits additive Holt-Winters models from the command line or serves
// forecasts over HTTP.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
