package main

import (
	"veriface.io/infrastructure"
	"veriface.io/infrastructure/env"
)

func init() {
	env.LoadEnv()
}

func main() {
	infrastructure.StartServer()
}
