package main

import "agreementlog/cmd/client/cmd"

func main() {
	cmd.Execute()
}
