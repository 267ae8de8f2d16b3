package main

import "github.com/nehashinde/codsoft/codsoft/cmd"

func main() {
	cmd.Execute()
}
