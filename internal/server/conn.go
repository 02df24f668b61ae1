package server

import (
	"bufio"
	"net"
	"strings"
	"sync"

	"auctioneer/internal/domain"
)

// lineConn frames a TCP connection into newline-terminated text messages.
// Writes are serialized so the coordinator and a session can both notify the
// same peer; Close is idempotent because the coordinator's close can race
// the owning session's own exit path.
type lineConn struct {
	conn   net.Conn
	reader *bufio.Reader

	writeMu   sync.Mutex
	closeOnce sync.Once
	closeErr  error
}

func NewLineConn(conn net.Conn) domain.ClientConn {
	return &lineConn{
		conn:   conn,
		reader: bufio.NewReader(conn),
	}
}

func (c *lineConn) SendLine(msg string) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	_, err := c.conn.Write([]byte(msg + "\n"))
	return err
}

func (c *lineConn) ReadLine() (string, error) {
	line, err := c.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *lineConn) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.conn.Close()
	})
	return c.closeErr
}

func (c *lineConn) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}
