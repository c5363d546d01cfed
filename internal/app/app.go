package app

import (
	"context"

	"github.com/rs/zerolog"

	"partyline/internal/domain"
	"partyline/internal/session"
	"partyline/internal/transport"
)

// App is the dependency graph handed to CLI commands.
type App struct {
	Config     Config
	Identities domain.IdentityStore
	IDs        domain.IdentityService
	Log        zerolog.Logger
}

func New(cfg Config, identities domain.IdentityStore, ids domain.IdentityService, log zerolog.Logger) *App {
	return &App{
		Config:     cfg,
		Identities: identities,
		IDs:        ids,
		Log:        log,
	}
}

// Connect dials the configured server and returns a session over it. The
// caller runs the session and closes the connection.
func (a *App) Connect(ctx context.Context, id domain.Identity, opts ...session.Option) (*session.Session, domain.Conn, error) {
	conn, err := transport.Dial(ctx, a.Config.Server, transport.Options{
		InsecureSkipVerify: a.Config.InsecureSkipVerify,
		HandshakeTimeout:   a.Config.HandshakeTimeout,
	})
	if err != nil {
		return nil, nil, err
	}
	opts = append([]session.Option{session.WithLogger(a.Log)}, opts...)
	return session.New(a.Config.Session, id, conn, opts...), conn, nil
}
