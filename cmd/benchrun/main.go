package main

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
)

// run executes a command and prints its combined output. Returns exit code.
func run(name string, args ...string) int {
	cmd := exec.Command(name, args...)
	cmd.Env = os.Environ()
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	fmt.Print(out.String())
	if err == nil {
		return 0
	}
	if ee, ok := err.(*exec.ExitError); ok {
		return ee.ExitCode()
	}
	fmt.Fprintf(os.Stderr, "error running %s: %v\n", name, err)
	return 1
}

func main() {
	// Runs all benchmarks in bench/ with benchmem, then one-line timings of
	// the influence walk at increasing depth.
	// Usage: go run ./cmd/benchrun
	fmt.Println("Columns: BENCHMARK  N  ns/op  B/op  allocs/op")
	code := run("go", "test", "./bench", "-run", "^$", "-bench", ".", "-benchmem", "-benchtime=1s")
	if code != 0 {
		os.Exit(code)
	}

	fmt.Println("\nInfluence Performance:")
	fmt.Println("TEST \t\tDepth \tFirst \tSecond \tTime \tPerCall")
	for _, depth := range []string{"1", "2", "3", "4"} {
		run("go", "run", "./cmd/influencebench", "-depth", depth, "-repeat", "20", "-label", "Initial")
	}
	_ = run("go", "run", "./cmd/influencebench", "-fen",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"-depth", "3", "-repeat", "20", "-label", "Kiwipete")
	os.Exit(0)
}
