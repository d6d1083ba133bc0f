package main

import "github/chapool/go-txsigner/cmd"

func main() {
	cmd.Execute()
}
