package main

import "github.com/KaramelBytes/datasight-cli/cmd"

func main() {
	cmd.Execute()
}
