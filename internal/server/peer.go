package server

import (
	"bufio"
	"net"
	"strings"
	"time"
)

// Peer represents a connected client. It wraps a network connection with
// buffered line-oriented reading and writing.
type Peer struct {
	conn   net.Conn
	reader *bufio.Reader
	writer *bufio.Writer
}

// NewPeer initializes a new client peer from a network connection.
func NewPeer(conn net.Conn) *Peer {
	return &Peer{
		conn:   conn,
		reader: bufio.NewReader(conn),
		writer: bufio.NewWriter(conn),
	}
}

// ReadLine reads the next request line, trimmed of surrounding whitespace.
func (p *Peer) ReadLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Send writes a response line followed by a newline and flushes it.
func (p *Peer) Send(line string) error {
	if _, err := p.writer.WriteString(line + "\n"); err != nil {
		return err
	}
	return p.writer.Flush()
}

// RemoteAddr returns the client address for logging.
func (p *Peer) RemoteAddr() string {
	return p.conn.RemoteAddr().String()
}

// SetReadDeadline arms the per-request idle timeout. A zero duration
// disables it.
func (p *Peer) SetReadDeadline(d time.Duration) error {
	if d <= 0 {
		return p.conn.SetReadDeadline(time.Time{})
	}
	return p.conn.SetReadDeadline(time.Now().Add(d))
}

// Close terminates the underlying network connection.
func (p *Peer) Close() error {
	return p.conn.Close()
}
