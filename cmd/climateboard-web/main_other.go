//go:build !js

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "climateboard-web runs in the browser; build it with GopherJS")
	os.Exit(1)
}
