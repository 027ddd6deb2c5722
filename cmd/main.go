package main

import (
	"github.com/joho/godotenv"

	"github.com/rdmitr/agentchat/internal/cli"
)

func main() {
	godotenv.Load(".env")
	cli.Execute()
}
