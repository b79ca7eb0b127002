package env

import (
	"fmt"

	"github.com/joho/godotenv"
)

func init() {
	err := godotenv.Load()
	if err != nil {
		// logger is not initialized this early in the process lifecycle
		fmt.Println("error loading env variables")
	}
}

func LoadEnv() {
}
