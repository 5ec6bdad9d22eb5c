package main

import "github.com/jewettg/excel-tool/cmd"

func main() {
	cmd.Execute()
}
