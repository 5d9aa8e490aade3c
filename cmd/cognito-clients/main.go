package main

import "github.com/mikecbrant/cognito-userpool-clients/cmd/cognito-clients/commands"

func main() {
	commands.Execute()
}
