package commands

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"partyline/internal/protocol/output"
)

// decode: feed hex output batches through one decoder, as the session would.
func decodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode",
		Short: "Decode hex contract output batches from stdin, one per line",
		RunE: func(cmd *cobra.Command, args []string) error {
			dec := output.NewDecoder()
			out := cmd.OutOrStdout()
			sc := bufio.NewScanner(cmd.InOrStdin())
			sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
			n := 0
			for sc.Scan() {
				n++
				text := strings.TrimSpace(sc.Text())
				if text == "" {
					continue
				}
				batch, err := hex.DecodeString(text)
				if err != nil {
					appCtx.Log.Warn().Err(err).Int("line", n).Msg("skipping non-hex batch")
					continue
				}
				lines, err := dec.Decode(batch)
				if err != nil {
					appCtx.Log.Warn().Err(err).Int("line", n).Msg("skipping batch")
					continue
				}
				for _, l := range lines {
					fmt.Fprintln(out, l)
				}
			}
			return sc.Err()
		},
	}
}
