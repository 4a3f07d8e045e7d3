// Command interclassectl inspects and resets the Interclasse record store.
// It reads the same environment as the server.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
