package main

import "github.com/Tenakskd/ytserver-v2/cmd"

func main() {
	cmd.Execute()
}
