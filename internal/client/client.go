// Package client implements the interactive text client: print every server
// line, answer prompts from stdin, leave when the server says the
// conversation is over. It holds no auction state of its own.
package client

import (
	"bufio"
	"fmt"
	"io"
	"net"

	"auctioneer/internal/protocol"
)

// promptLines are the server messages after which the user is expected to
// type a line.
var promptLines = map[string]bool{
	protocol.MsgSubmitRequest:  true,
	protocol.MsgBiddingStarted: true,
	protocol.MsgInvalidBid:     true,
}

// terminalLines are the server messages after which the connection is done.
var terminalLines = map[string]bool{
	protocol.MsgServerBusy:     true,
	protocol.MsgBiddingOngoing: true,
	protocol.MsgGoodbye:        true,
}

type Client struct {
	conn net.Conn
	in   io.Reader
	out  io.Writer
}

func New(conn net.Conn, in io.Reader, out io.Writer) *Client {
	return &Client{
		conn: conn,
		in:   in,
		out:  out,
	}
}

// Run loops until the server closes the connection or sends a terminal
// message. The multi-line invalid-request reply works out naturally: its
// last line is the submit prompt, which triggers the next read from stdin.
func (c *Client) Run() error {
	serverLines := bufio.NewScanner(c.conn)
	userLines := bufio.NewScanner(c.in)

	for serverLines.Scan() {
		line := serverLines.Text()
		fmt.Fprintln(c.out, line)

		if terminalLines[line] {
			return nil
		}

		if promptLines[line] {
			if !userLines.Scan() {
				return userLines.Err()
			}
			if _, err := fmt.Fprintf(c.conn, "%s\n", userLines.Text()); err != nil {
				return err
			}
		}
	}
	return serverLines.Err()
}
