// rubik - command-line front end for the cube state machine.
package main

import (
	"github.com/SeamusWaldron/rubik/internal/cli"
)

func main() {
	cli.Execute()
}
