package main

import "github.com/dbsmedya/amplisearch/cmd/amplisearch/cmd"

func main() {
	cmd.Execute()
}
