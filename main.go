package main

import "github.com/avtoelite/storefront/cmd"

func main() {
	cmd.Execute()
}
