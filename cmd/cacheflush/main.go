// Command cacheflush is an operational tool for the distributed image
// cache. It connects to the same Redis instance as the service and can
// report or clear the image key namespace without going through the API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"soundstash/internal/cache"
)

const defaultTimeout = 30 * time.Second

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nInterrupted, shutting down...")
		cancel()
	}()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	db := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid REDIS_DB %q\n", v)
			os.Exit(1)
		}
		db = parsed
	}

	c := cache.NewRedisCache(addr, os.Getenv("REDIS_PASSWORD"), db)
	defer c.Close()

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	err := c.Ping(pingCtx)
	pingCancel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Redis unreachable at %s: %v\n", addr, err)
		os.Exit(1)
	}

	opCtx, opCancel := context.WithTimeout(ctx, defaultTimeout)
	defer opCancel()

	switch command {
	case "status":
		keys, err := c.ScanKeys(opCtx, cache.KeyNamespace+"*")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: scan failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%d key(s) in namespace %s\n", len(keys), cache.KeyNamespace)
		for _, key := range keys {
			fmt.Println("  " + key)
		}
	case "flush":
		deleted, err := c.ClearNamespace(opCtx, cache.KeyNamespace+"*")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: flush failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Deleted %d key(s) from namespace %s\n", deleted, cache.KeyNamespace)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %q\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: cacheflush <command>")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  status   List cached image keys")
	fmt.Fprintln(os.Stderr, "  flush    Delete every cached image key")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Environment:")
	fmt.Fprintln(os.Stderr, "  REDIS_ADDR      Redis address (default localhost:6379)")
	fmt.Fprintln(os.Stderr, "  REDIS_PASSWORD  Redis password (default empty)")
	fmt.Fprintln(os.Stderr, "  REDIS_DB        Redis database number (default 0)")
}
