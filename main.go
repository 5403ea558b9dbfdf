package main

import "github.com/manju-lilly/regintel-processbatch/cmd"

func main() {
	cmd.Execute()
}
