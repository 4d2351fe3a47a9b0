package service

import (
	"context"

	"github.com/deckbw/bwbridge/internal/bw"
	"github.com/deckbw/bwbridge/internal/credstore"
)

// SendService wraps Bitwarden Send: one-off shared secrets.
type SendService struct {
	runner *bw.Runner
	creds  *credstore.Store
}

func NewSendService(runner *bw.Runner, creds *credstore.Store) *SendService {
	return &SendService{runner: runner, creds: creds}
}

type SendInput struct {
	bw.SendOptions
	Session string `json:"session"`
}

func (s *SendService) Send(ctx context.Context, in SendInput) (*bw.Result, error) {
	return s.runner.Run(ctx, in.SendOptions.Args(), bw.RunOptions{
		Session: resolveSession(ctx, s.creds, in.Session),
	})
}

type ReceiveInput struct {
	bw.ReceiveOptions
	Session string `json:"session"`
}

func (s *SendService) Receive(ctx context.Context, in ReceiveInput) (*bw.Result, error) {
	return s.runner.Run(ctx, in.ReceiveOptions.Args(), bw.RunOptions{
		Session: resolveSession(ctx, s.creds, in.Session),
	})
}
