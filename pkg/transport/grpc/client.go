package grpc

import (
	"context"
	"fmt"
	"time"

	grpc "google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	wrapperspb "google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/groupsm/membergroup/pkg/group"
)

// Client is a thin, typed wrapper over GroupTransportClient: one method
// per command kind, each doing the envelope encode/Submit/decode dance so
// callers never touch requestEnvelope or wrapperspb directly.
type Client struct {
	conn    *grpc.ClientConn
	rpc     GroupTransportClient
	timeout time.Duration
}

// Dial connects to a Server at addr. The connection is insecure.
func Dial(addr string) (*Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	conn, err := grpc.DialContext(ctx, addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithBlock(),
	)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return &Client{conn: conn, rpc: NewGroupTransportClient(conn), timeout: 5 * time.Second}, nil
}

func (c *Client) Close() error { return c.conn.Close() }

func (c *Client) submit(ctx context.Context, req requestEnvelope) (any, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload, err := encodeGob(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	out, err := c.rpc.Submit(ctx, wrapperspb.Bytes(payload))
	if err != nil {
		return nil, err
	}

	var resp responseEnvelope
	if err := decodeGob(out.GetValue(), &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if resp.ErrMsg != "" {
		return resp.Result, fmt.Errorf("%s", resp.ErrMsg)
	}
	return resp.Result, nil
}

func (c *Client) Join(ctx context.Context, sessionID uint64) (uint64, error) {
	res, err := c.submit(ctx, requestEnvelope{Kind: group.KindJoin, SessionID: sessionID})
	if err != nil {
		return 0, err
	}
	id, _ := res.(uint64)
	return id, nil
}

func (c *Client) Leave(ctx context.Context, sessionID, member uint64) error {
	_, err := c.submit(ctx, requestEnvelope{Kind: group.KindLeave, SessionID: sessionID, Member: member})
	return err
}

func (c *Client) Listen(ctx context.Context, sessionID uint64) ([]uint64, error) {
	res, err := c.submit(ctx, requestEnvelope{Kind: group.KindListen, SessionID: sessionID})
	if err != nil {
		return nil, err
	}
	ids, _ := res.([]uint64)
	return ids, nil
}

func (c *Client) Resign(ctx context.Context, sessionID, member uint64) error {
	_, err := c.submit(ctx, requestEnvelope{Kind: group.KindResign, SessionID: sessionID, Member: member})
	return err
}

func (c *Client) SetProperty(ctx context.Context, sessionID, member uint64, name string, value any) error {
	_, err := c.submit(ctx, requestEnvelope{Kind: group.KindSetProperty, SessionID: sessionID, Member: member, Name: name, Value: value})
	return err
}

func (c *Client) GetProperty(ctx context.Context, sessionID, member uint64, name string) (any, error) {
	return c.submit(ctx, requestEnvelope{Kind: group.KindGetProperty, SessionID: sessionID, Member: member, Name: name})
}

func (c *Client) RemoveProperty(ctx context.Context, sessionID, member uint64, name string) error {
	_, err := c.submit(ctx, requestEnvelope{Kind: group.KindRemoveProperty, SessionID: sessionID, Member: member, Name: name})
	return err
}

func (c *Client) Send(ctx context.Context, sessionID, target uint64, topic string, message any) error {
	_, err := c.submit(ctx, requestEnvelope{Kind: group.KindSend, SessionID: sessionID, Target: target, Topic: topic, Message: message})
	return err
}

func (c *Client) Schedule(ctx context.Context, sessionID, member uint64, delayMS uint64, callback any) error {
	_, err := c.submit(ctx, requestEnvelope{Kind: group.KindSchedule, SessionID: sessionID, Member: member, DelayMS: delayMS, Callback: callback})
	return err
}

func (c *Client) Execute(ctx context.Context, sessionID, member uint64, callback any) error {
	_, err := c.submit(ctx, requestEnvelope{Kind: group.KindExecute, SessionID: sessionID, Member: member, Callback: callback})
	return err
}
