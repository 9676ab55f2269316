package main

import "github.com/mealdeck/mealdeck/cmd/mealdeck"

func main() {
	mealdeck.Execute()
}
