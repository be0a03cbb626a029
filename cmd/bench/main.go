// Benchmark client for the Medusa text protocol: runs SET/GET rounds over
// raw TCP connections and reports throughput and average latency.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"net"
	"os"
	"sync"
	"time"
)

type result struct {
	operations int
	duration   time.Duration
}

func (r result) display(name string) {
	opsPerSecond := float64(r.operations) / r.duration.Seconds()
	avgLatencyMs := float64(r.duration.Milliseconds()) / float64(r.operations)

	fmt.Printf("Benchmark: %s\n", name)
	fmt.Printf("  operations:  %d\n", r.operations)
	fmt.Printf("  duration:    %s\n", r.duration)
	fmt.Printf("  ops/sec:     %.2f\n", opsPerSecond)
	fmt.Printf("  avg latency: %.3fms\n\n", avgLatencyMs)
}

func main() {
	addr := flag.String("addr", "127.0.0.1:2312", "server address")
	n := flag.Int("n", 5000, "operations per worker")
	conc := flag.Int("c", 8, "concurrent connections")
	flag.Parse()

	seq, err := runWorker(*addr, "seq", *n)
	if err != nil {
		fmt.Fprintln(os.Stderr, "benchmark failed:", err)
		os.Exit(1)
	}
	seq.display("sequential SET/GET")

	var wg sync.WaitGroup
	wg.Add(*conc)
	start := time.Now()
	errs := make(chan error, *conc)

	for i := 0; i < *conc; i++ {
		go func(id int) {
			defer wg.Done()
			if _, err := runWorker(*addr, fmt.Sprintf("w%d", id), *n); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	if err := <-errs; err != nil {
		fmt.Fprintln(os.Stderr, "benchmark failed:", err)
		os.Exit(1)
	}

	total := result{operations: *conc * *n * 2, duration: time.Since(start)}
	total.display(fmt.Sprintf("concurrent SET/GET (%d connections)", *conc))
}

// runWorker performs n SET+GET pairs over a single connection and returns
// the timing for them.
func runWorker(addr, prefix string, n int) (result, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return result{}, fmt.Errorf("connect: %w", err)
	}
	defer conn.Close() //nolint:errcheck

	reader := bufio.NewReader(conn)
	writer := bufio.NewWriter(conn)

	// Skip the multi-line welcome banner: it ends with an empty line.
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return result{}, fmt.Errorf("read welcome: %w", err)
		}
		if line == "\n" {
			break
		}
	}

	start := time.Now()

	for i := 0; i < n; i++ {
		key := fmt.Sprintf("bench:%s:%d", prefix, i)

		if err := send(reader, writer, fmt.Sprintf("SET %s value_%d\n", key, i)); err != nil {
			return result{}, err
		}
		if err := send(reader, writer, fmt.Sprintf("GET %s\n", key)); err != nil {
			return result{}, err
		}
	}

	return result{operations: n * 2, duration: time.Since(start)}, nil
}

func send(reader *bufio.Reader, writer *bufio.Writer, cmd string) error {
	if _, err := writer.WriteString(cmd); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	if _, err := reader.ReadString('\n'); err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	return nil
}
