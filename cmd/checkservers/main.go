package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/danielpatrickdp/superego-harness/internal/bench"
)

// #region main

// checkservers probes every configured inference server's /health endpoint.
// Exit 0 only when all servers answer.
func main() {
	config := bench.DefaultConfig()
	client := bench.NewClient(config)
	servers := bench.DefaultServers()

	fmt.Println("Checking server status...")
	fmt.Println("============================================================")

	allRunning := true
	for _, server := range servers {
		if client.CheckHealth(context.Background(), server, 2*time.Second) {
			fmt.Printf("[OK]   %s server running (port %d)\n", server.Name, server.Port)
		} else {
			fmt.Printf("[FAIL] %s server not running (port %d)\n", server.Name, server.Port)
			allRunning = false
		}
	}

	fmt.Println("============================================================")
	if allRunning {
		fmt.Println("All servers running.")
		os.Exit(0)
	}
	fmt.Println("Some servers are not running.")
	os.Exit(1)
}

// #endregion main
