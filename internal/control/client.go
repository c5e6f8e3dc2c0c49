package control

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"syscall"
)

// Client talks to a running instance.
type Client struct {
	conn    net.Conn
	reader  *bufio.Reader
	encoder *json.Encoder
}

// Dial connects to the instance listening on address.
func Dial(ctx context.Context, address string) (*Client, error) {
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		if errors.Is(err, syscall.ECONNREFUSED) {
			return nil, ErrNotRunning
		}
		return nil, fmt.Errorf("dial %s: %w", address, err)
	}
	return &Client{
		conn:    conn,
		reader:  bufio.NewReader(conn),
		encoder: json.NewEncoder(conn),
	}, nil
}

// Close closes the connection.
func (client *Client) Close() error {
	return client.conn.Close()
}

// Do sends request and waits for its response. A response with OK false is
// returned together with its error.
func (client *Client) Do(ctx context.Context, request Request) (Response, error) {
	if deadline, ok := ctx.Deadline(); ok {
		if err := client.conn.SetDeadline(deadline); err != nil {
			return Response{}, fmt.Errorf("set deadline: %w", err)
		}
	}

	if err := client.encoder.Encode(request); err != nil {
		return Response{}, fmt.Errorf("send %s: %w", request.Command, err)
	}
	line, err := client.reader.ReadBytes('\n')
	if err != nil {
		return Response{}, fmt.Errorf("read %s response: %w", request.Command, err)
	}

	var response Response
	if err := json.Unmarshal(line, &response); err != nil {
		return Response{}, fmt.Errorf("decode %s response: %w", request.Command, err)
	}
	return response, response.Err()
}
