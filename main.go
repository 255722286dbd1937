package main

import "github.com/Yates-Labs/roam/cmd"

func main() {
	cmd.Execute()
}
