package main

import "github.com/LeJamon/goPreauthLedger/internal/cli"

func main() {
	cli.Execute()
}
