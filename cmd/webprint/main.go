// Command webprint builds and inspects Brother Smooth Print URIs.
package main

import (
	"os"

	"github.com/ghettovoice/webprint/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:], app.Dependencies{}))
}
