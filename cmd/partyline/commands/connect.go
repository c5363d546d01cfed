package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"partyline/internal/session"
)

const statCommand = "stat"

// connect: join the party line. Args are [port] or [host port].
func connectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "connect [port] | connect [host port]",
		Short: "Connect to a contract server and chat on the party line",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				url, err := serverFromArgs(args)
				if err != nil {
					return err
				}
				appCtx.Config.Server = url
			}

			id, created, err := appCtx.IDs.LoadOrGenerate(passphrase)
			if err != nil {
				return err
			}
			log := appCtx.Log
			if created {
				log.Info().Str("pubkey", id.PublicKeyEncoded()).Msg("generated new identity")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.Info().Str("server", appCtx.Config.Server).Msg("connecting")
			sess, conn, err := appCtx.Connect(ctx, id, session.WithOutput(cmd.OutOrStdout()))
			if err != nil {
				return err
			}
			defer conn.Close()

			runErr := make(chan error, 1)
			go func() { runErr <- sess.Run(ctx) }()

			var timeout <-chan time.Time
			if d := appCtx.Config.HandshakeTimeout; d > 0 {
				timer := time.NewTimer(d)
				defer timer.Stop()
				timeout = timer.C
			}
			select {
			case <-sess.Ready():
			case err := <-runErr:
				return sessionExit(err)
			case <-timeout:
				return fmt.Errorf("no challenge from %s within %s", appCtx.Config.Server, appCtx.Config.HandshakeTimeout)
			case <-ctx.Done():
				return nil
			}

			stopLiveness := sess.StartLiveness(ctx)
			defer stopLiveness()

			return promptLoop(ctx, sess, cmd.InOrStdin(), runErr)
		},
	}
}

func promptLoop(ctx context.Context, sess *session.Session, in io.Reader, runErr <-chan error) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-runErr:
			return sessionExit(err)
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			var err error
			if strings.TrimSpace(line) == statCommand {
				err = sess.RequestStatus(ctx)
			} else {
				err = sess.SendMessage(ctx, line)
			}
			if err != nil {
				appCtx.Log.Warn().Err(err).Msg("send failed")
			}
		}
	}
}

func sessionExit(err error) error {
	if err == nil || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// serverFromArgs builds the server URL from [port] or [host port].
func serverFromArgs(args []string) (string, error) {
	host, port := "localhost", args[0]
	if len(args) == 2 {
		host, port = args[0], args[1]
	}
	n, err := strconv.Atoi(port)
	if err != nil || n <= 0 || n > 65535 {
		return "", fmt.Errorf("invalid port %q", port)
	}
	return "wss://" + net.JoinHostPort(host, port), nil
}
