// Command gcvec drives allocator-backed vectors from the shell.
package main

import "github.com/ib-77/gckit/internal/cli"

func main() {
	cli.Execute()
}
