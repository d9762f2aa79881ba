// manifex reduces Android application manifests to their externally
// reachable components.
package main

import (
	"os"

	"github.com/hupe1980/manifex/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
