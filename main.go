package main

import (
	"github.com/PressureTank/authdemo/backend/cli"
)

func main() {
	cli.InitAndExecute()
}
