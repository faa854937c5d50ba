package main

import "daytrack/cmd/daytrack"

func main() {
	daytrack.Execute()
}
