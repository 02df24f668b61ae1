package main

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"auctioneer/internal/client"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Usage: auction-client <host> <port>")
		os.Exit(1)
	}

	host := os.Args[1]
	port, err := strconv.Atoi(os.Args[2])
	if err != nil || port < 1 || port > 65535 {
		fmt.Fprintln(os.Stderr, "Invalid port number.")
		os.Exit(1)
	}

	conn, err := net.Dial("tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to %s:%d: %v\n", host, port, err)
		os.Exit(1)
	}
	defer conn.Close()

	if err := client.New(conn, os.Stdin, os.Stdout).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
		os.Exit(1)
	}
}
