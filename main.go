package main

import "github.com/RealityMetaverse/realitymeta-golembase-tools/cmd"

func main() {
	cmd.Execute()
}
