// Command cachesim replays a trace of CPU memory requests against a
// simulated cache and reports hits, misses, elapsed cycles, and an
// estimated hardware gate count.
package main

import "github.com/sarchlab/cachesim/cmd/cachesim/cmd"

func main() {
	cmd.Execute()
}
