package main

import (
	"soundlink/cmd"
)

func main() {
	cmd.Execute()
}
