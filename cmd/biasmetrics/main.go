// Command biasmetrics measures demographic bias in labelled datasets.
package main

import "github.com/mesh-intelligence/biasmetrics/internal/cli"

func main() {
	cli.Execute()
}
