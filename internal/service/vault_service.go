package service

import (
	"context"
	"fmt"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/deckbw/bwbridge/internal/bw"
	"github.com/deckbw/bwbridge/internal/credstore"
	appErr "github.com/deckbw/bwbridge/internal/pkg/errors"
)

// VaultService drives the session lifecycle: status, login, unlock, lock,
// logout and sync, plus the credential persistence around them.
type VaultService struct {
	runner *bw.Runner
	creds  *credstore.Store
	onSync []func()
}

func NewVaultService(runner *bw.Runner, creds *credstore.Store) *VaultService {
	return &VaultService{runner: runner, creds: creds}
}

// OnSync registers a callback fired after every successful sync.
func (s *VaultService) OnSync(fn func()) {
	s.onSync = append(s.onSync, fn)
}

type StatusInput struct {
	Session  string `json:"session"`
	Pretty   bool   `json:"pretty"`
	Raw      bool   `json:"raw"`
	Response bool   `json:"response"`
}

type StatusOutput struct {
	*bw.Result
	Info *bw.StatusInfo `json:"info,omitempty"`
}

func (s *VaultService) Status(ctx context.Context, in StatusInput) (*StatusOutput, error) {
	result, err := s.runner.Run(ctx, []string{"status"}, bw.RunOptions{
		Session:  resolveSession(ctx, s.creds, in.Session),
		Pretty:   in.Pretty,
		Raw:      in.Raw,
		Response: in.Response,
	})
	if err != nil {
		return nil, err
	}
	out := &StatusOutput{Result: result}
	if result.Success && !in.Pretty && !in.Response {
		if info, parseErr := bw.ParseStatus(result.Stdout); parseErr == nil {
			out.Info = info
		}
	}
	return out, nil
}

type LoginInput struct {
	bw.LoginOptions
	NoInteraction    bool `json:"nointeraction"`
	RememberPassword bool `json:"remember_password"`
}

// Login runs `bw login` and, when it succeeds, persists the account email,
// the captured session token and (only on request) the master password.
func (s *VaultService) Login(ctx context.Context, in LoginInput) (*bw.Result, error) {
	result, err := s.runner.Run(ctx, in.LoginOptions.Args(), bw.RunOptions{
		NoInteraction: in.NoInteraction,
	})
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return result, nil
	}
	if in.Email != "" {
		if saveErr := s.creds.SaveEmail(in.Email); saveErr != nil {
			logutil.GetLogger(ctx).Warn("persist email failed", zap.Error(saveErr))
		}
	}
	if in.RememberPassword && in.Password != "" {
		if saveErr := s.creds.SavePassword(ctx, in.Password); saveErr != nil {
			logutil.GetLogger(ctx).Warn("persist password failed", zap.Error(saveErr))
		}
	}
	if session := bw.ExtractSession(result.Stdout, false); session != "" {
		if saveErr := s.creds.SaveSession(ctx, session); saveErr != nil {
			logutil.GetLogger(ctx).Warn("persist session failed", zap.Error(saveErr))
		}
	}
	return result, nil
}

type UnlockInput struct {
	Session       string `json:"session"`
	Password      string `json:"password"`
	PasswordEnv   string `json:"passwordenv"`
	PasswordFile  string `json:"passwordfile"`
	NoInteraction bool   `json:"nointeraction"`
}

// Unlock runs `bw unlock --raw` so stdout carries nothing but the session
// token. A password from the request, or the stored one when the request
// names no source, is handed over through the environment rather than argv.
func (s *VaultService) Unlock(ctx context.Context, in UnlockInput) (*bw.Result, error) {
	opts := bw.UnlockOptions{
		PasswordEnv:  in.PasswordEnv,
		PasswordFile: in.PasswordFile,
	}
	var extraEnv map[string]string
	if in.Password != "" && opts.PasswordEnv == "" && opts.PasswordFile == "" {
		opts.PasswordEnv = "BW_PASSWORD"
		extraEnv = map[string]string{"BW_PASSWORD": in.Password}
	}
	if opts.PasswordEnv == "" && opts.PasswordFile == "" {
		stored, err := s.creds.LoadPassword(ctx)
		if err != nil {
			if appErr.IsNotFound(err) {
				return nil, fmt.Errorf("%w: no password given and none stored", appErr.ErrInvalid)
			}
			return nil, err
		}
		opts.PasswordEnv = "BW_PASSWORD"
		extraEnv = map[string]string{"BW_PASSWORD": stored}
	}

	result, err := s.runner.Run(ctx, opts.Args(), bw.RunOptions{
		Session:       resolveSession(ctx, s.creds, in.Session),
		Raw:           true,
		NoInteraction: in.NoInteraction,
		ExtraEnv:      extraEnv,
	})
	if err != nil {
		return nil, err
	}
	if result.Success {
		if session := bw.ExtractSession(result.Stdout, true); session != "" {
			if saveErr := s.creds.SaveSession(ctx, session); saveErr != nil {
				logutil.GetLogger(ctx).Warn("persist session failed", zap.Error(saveErr))
			}
		}
	}
	return result, nil
}

func (s *VaultService) Lock(ctx context.Context) (*bw.Result, error) {
	result, err := s.runner.Run(ctx, []string{"lock"}, bw.RunOptions{NoInteraction: true})
	if err != nil {
		return nil, err
	}
	if result.Success {
		if clearErr := s.creds.ClearSession(); clearErr != nil {
			logutil.GetLogger(ctx).Warn("clear session failed", zap.Error(clearErr))
		}
	}
	return result, nil
}

// Logout drops the stored session but keeps email and master password;
// they still identify the same account for the next login.
func (s *VaultService) Logout(ctx context.Context) (*bw.Result, error) {
	result, err := s.runner.Run(ctx, []string{"logout"}, bw.RunOptions{NoInteraction: true})
	if err != nil {
		return nil, err
	}
	if result.Success {
		if clearErr := s.creds.ClearSession(); clearErr != nil {
			logutil.GetLogger(ctx).Warn("clear session failed", zap.Error(clearErr))
		}
	}
	return result, nil
}

type SyncInput struct {
	bw.SyncOptions
	Session string `json:"session"`
}

func (s *VaultService) Sync(ctx context.Context, in SyncInput) (*bw.Result, error) {
	result, err := s.runner.Run(ctx, in.SyncOptions.Args(), bw.RunOptions{
		Session:       resolveSession(ctx, s.creds, in.Session),
		NoInteraction: true,
	})
	if err != nil {
		return nil, err
	}
	if result.Success {
		for _, fn := range s.onSync {
			fn()
		}
	}
	return result, nil
}

// CredentialState tells the panel what is on disk without revealing it.
type CredentialState struct {
	Email       string `json:"email"`
	HasPassword bool   `json:"has_password"`
	HasSession  bool   `json:"has_session"`
}

func (s *VaultService) Credentials(ctx context.Context) (*CredentialState, error) {
	state := &CredentialState{}
	email, err := s.creds.LoadEmail()
	if err != nil && !appErr.IsNotFound(err) {
		return nil, err
	}
	state.Email = email
	if _, err := s.creds.LoadPassword(ctx); err == nil {
		state.HasPassword = true
	} else if !appErr.IsNotFound(err) {
		return nil, err
	}
	if _, err := s.creds.LoadSession(ctx); err == nil {
		state.HasSession = true
	} else if !appErr.IsNotFound(err) {
		return nil, err
	}
	return state, nil
}

func (s *VaultService) ClearCredentials() error {
	if err := s.creds.ClearSession(); err != nil {
		return err
	}
	if err := s.creds.ClearPassword(); err != nil {
		return err
	}
	return s.creds.ClearEmail()
}
