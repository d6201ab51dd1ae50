package main

import "github.com/recbase/recmap/cmd"

func main() {
	cmd.Execute()
}
