package service

import (
	"context"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/xxxsen/common/logutil"

	"github.com/deckbw/bwbridge/internal/bw"
	"github.com/deckbw/bwbridge/internal/credstore"
)

// ItemService covers the vault object commands. List results are cached in
// a small expirable LRU because the panel re-renders the same listing on
// every navigation and a bw fork per render is noticeably slow; any
// mutation or sync drops the whole cache.
type ItemService struct {
	runner *bw.Runner
	creds  *credstore.Store
	cache  *expirable.LRU[string, *bw.Result]
}

func NewItemService(runner *bw.Runner, creds *credstore.Store, cacheSize int, cacheTTL time.Duration) *ItemService {
	var cache *expirable.LRU[string, *bw.Result]
	if cacheSize > 0 && cacheTTL > 0 {
		cache = expirable.NewLRU[string, *bw.Result](cacheSize, nil, cacheTTL)
	}
	return &ItemService{runner: runner, creds: creds, cache: cache}
}

func (s *ItemService) InvalidateCache() {
	if s.cache != nil {
		s.cache.Purge()
	}
}

type ListInput struct {
	bw.ListOptions
	Session string `json:"session"`
}

func (s *ItemService) List(ctx context.Context, in ListInput) (*bw.Result, error) {
	session := resolveSession(ctx, s.creds, in.Session)
	args := in.ListOptions.Args()
	key := strings.Join(args, "\x1f") + "\x1f" + session
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			logutil.GetLogger(ctx).Debug("list cache hit")
			return cached, nil
		}
	}
	result, err := s.runner.Run(ctx, args, bw.RunOptions{Session: session})
	if err != nil {
		return nil, err
	}
	if s.cache != nil && result.Success {
		s.cache.Add(key, result)
	}
	return result, nil
}

type GetInput struct {
	bw.GetOptions
	Session string `json:"session"`
}

// Get is never cached: it can reveal totp codes and write attachment files.
func (s *ItemService) Get(ctx context.Context, in GetInput) (*bw.Result, error) {
	return s.runner.Run(ctx, in.GetOptions.Args(), bw.RunOptions{
		Session: resolveSession(ctx, s.creds, in.Session),
	})
}

type CreateInput struct {
	bw.CreateOptions
	Session string `json:"session"`
}

func (s *ItemService) Create(ctx context.Context, in CreateInput) (*bw.Result, error) {
	return s.mutate(ctx, in.CreateOptions.Args(), in.Session)
}

type EditInput struct {
	bw.EditOptions
	Session string `json:"session"`
}

func (s *ItemService) Edit(ctx context.Context, in EditInput) (*bw.Result, error) {
	return s.mutate(ctx, in.EditOptions.Args(), in.Session)
}

type DeleteInput struct {
	bw.DeleteOptions
	Session string `json:"session"`
}

func (s *ItemService) Delete(ctx context.Context, in DeleteInput) (*bw.Result, error) {
	return s.mutate(ctx, in.DeleteOptions.Args(), in.Session)
}

type RestoreInput struct {
	bw.RestoreOptions
	Session string `json:"session"`
}

func (s *ItemService) Restore(ctx context.Context, in RestoreInput) (*bw.Result, error) {
	return s.mutate(ctx, in.RestoreOptions.Args(), in.Session)
}

type MoveInput struct {
	bw.MoveOptions
	Session string `json:"session"`
}

func (s *ItemService) Move(ctx context.Context, in MoveInput) (*bw.Result, error) {
	return s.mutate(ctx, in.MoveOptions.Args(), in.Session)
}

type ConfirmInput struct {
	bw.ConfirmOptions
	Session string `json:"session"`
}

func (s *ItemService) Confirm(ctx context.Context, in ConfirmInput) (*bw.Result, error) {
	return s.mutate(ctx, in.ConfirmOptions.Args(), in.Session)
}

func (s *ItemService) mutate(ctx context.Context, args []string, session string) (*bw.Result, error) {
	result, err := s.runner.Run(ctx, args, bw.RunOptions{
		Session: resolveSession(ctx, s.creds, session),
	})
	if err != nil {
		return nil, err
	}
	if result.Success {
		s.InvalidateCache()
	}
	return result, nil
}
