package service

import (
	"context"

	"github.com/deckbw/bwbridge/internal/bw"
	"github.com/deckbw/bwbridge/internal/credstore"
)

// ToolService groups the utility commands that neither touch vault objects
// nor the session lifecycle.
type ToolService struct {
	runner *bw.Runner
	creds  *credstore.Store
}

func NewToolService(runner *bw.Runner, creds *credstore.Store) *ToolService {
	return &ToolService{runner: runner, creds: creds}
}

type GenerateInput struct {
	bw.GenerateOptions
	Session string `json:"session"`
}

func (s *ToolService) Generate(ctx context.Context, in GenerateInput) (*bw.Result, error) {
	return s.runner.Run(ctx, in.GenerateOptions.Args(), bw.RunOptions{
		Session: resolveSession(ctx, s.creds, in.Session),
	})
}

func (s *ToolService) Encode(ctx context.Context, text string) (*bw.Result, error) {
	return s.runner.Run(ctx, []string{"encode"}, bw.RunOptions{Input: &text})
}

type ExportInput struct {
	bw.ExportOptions
	Session string `json:"session"`
	Raw     bool   `json:"raw"`
}

func (s *ToolService) Export(ctx context.Context, in ExportInput) (*bw.Result, error) {
	return s.runner.Run(ctx, in.ExportOptions.Args(), bw.RunOptions{
		Session: resolveSession(ctx, s.creds, in.Session),
		Raw:     in.Raw,
	})
}

type ImportInput struct {
	bw.ImportOptions
	Session string `json:"session"`
}

func (s *ToolService) Import(ctx context.Context, in ImportInput) (*bw.Result, error) {
	return s.runner.Run(ctx, in.ImportOptions.Args(), bw.RunOptions{
		Session: resolveSession(ctx, s.creds, in.Session),
	})
}

func (s *ToolService) Update(ctx context.Context) (*bw.Result, error) {
	return s.runner.Run(ctx, []string{"update"}, bw.RunOptions{NoInteraction: true})
}

func (s *ToolService) ConfigServer(ctx context.Context, in bw.ConfigServerOptions) (*bw.Result, error) {
	return s.runner.Run(ctx, in.Args(), bw.RunOptions{})
}

type DeviceApprovalInput struct {
	bw.DeviceApprovalOptions
	Session string `json:"session"`
}

func (s *ToolService) DeviceApproval(ctx context.Context, in DeviceApprovalInput) (*bw.Result, error) {
	return s.runner.Run(ctx, in.DeviceApprovalOptions.Args(), bw.RunOptions{
		Session: resolveSession(ctx, s.creds, in.Session),
	})
}
