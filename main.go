package main

import "account-db-compare/cmd"

func main() {
	cmd.Execute()
}
