package main

import "github.com/mpkg-project/mpkg/cmd"

// version is set at build time.
var version = "develop"

func main() {
	cmd.Execute(version)
}
