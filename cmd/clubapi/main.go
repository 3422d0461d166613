package main

import "github.com/Revanth2074/Aprameya/cmd/clubapi/cmd"

func main() {
	cmd.Execute()
}
