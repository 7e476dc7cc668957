package main

import (
	_ "github.com/joho/godotenv/autoload"

	"github.com/Zachkp/showcase/cmd"
)

func main() {
	cmd.Execute()
}
