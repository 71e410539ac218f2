package util

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
)

// SetupInterruptHandler removes unfinished temp writes of target on SIGINT or
// SIGTERM and exits. The returned func stops watching.
func SetupInterruptHandler(target string) func() {
	sig := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-sig:
		case <-done:
			return
		}
		fmt.Println("\nInterrupt received. Cleaning up...")

		CleanupTempFiles(target)
		fmt.Println("\nExiting due to interrupt.")

		os.Exit(1)
	}()

	return func() {
		signal.Stop(sig)
		close(done)
	}
}

// CleanupTempFiles deletes leftover temp files written for target by
// WriteFileAtomic and returns how many were removed.
func CleanupTempFiles(target string) int {
	dir, base := filepath.Split(target)
	if dir == "" {
		dir = "."
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}

	removed := 0
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, base+".") || !strings.HasSuffix(name, TempSuffix) {
			continue
		}

		full := filepath.Join(dir, name)
		if err := os.Remove(full); err != nil {
			fmt.Printf("Error cleaning up %s: %v\n", full, err)
			continue
		}
		fmt.Printf("Removed %s\n", full)
		removed++
	}

	return removed
}
