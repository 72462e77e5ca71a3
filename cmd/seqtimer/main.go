package main

import "github.com/MeKo-Tech/seqtimer/cmd/seqtimer/cmd"

func main() {
	cmd.Execute()
}
