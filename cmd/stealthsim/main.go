// Command stealthsim runs headless shop episodes and prints level layouts.
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	app := newApp()

	if err := app.Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
