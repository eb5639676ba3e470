// Landing-page generation service: turns a one-line business idea into a
// stored landing page via a streaming chat-completion API.
package main

import (
	"fmt"
	"os"

	"github.com/ReeceHarding/landing-page/internal/bootstrap"
)

func main() {
	if err := bootstrap.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start service: %v\n", err)
		os.Exit(1)
	}
}
