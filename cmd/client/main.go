package main

import "fitclub/cmd/client/cmd"

func main() {
	cmd.Execute()
}
