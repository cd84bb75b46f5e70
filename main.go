package main

import "github.com/frahmantamala/membership-management/cmd"

func main() {
	cmd.Execute()
}
