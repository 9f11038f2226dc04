// Command library-client is a terminal client for the library
// management service.
package main

import "github.com/DeltaH-ll/library-client/cmd/library-client/cmd"

func main() {
	cmd.Execute()
}
