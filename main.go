package main

import "github.com/nexless/storeaudit/cmd"

var execCmd = cmd.Execute

func main() {
	execCmd()
}
