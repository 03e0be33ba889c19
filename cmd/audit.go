package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opendev-labs/auto-notion/internal/domain"
)

type auditOutput struct {
	Result      domain.AuditResult `json:"result"`
	Suggestions []string           `json:"suggestions"`
}

func newAuditCommand(opts *rootOptions) *cobra.Command {
	var report bool

	cmd := &cobra.Command{
		Use:   "audit [text...]",
		Short: "Score text against the frequency rubric",
		Long: `Score text against the frequency rubric.

Without arguments the text is read from stdin. With --report every
non-empty input line is audited and a batch report is printed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := newCommandDeps(opts, true)
			if err != nil {
				return err
			}
			defer func() { _ = deps.Logger.Sync() }()

			svc, err := newService(deps, nil, nil, nil)
			if err != nil {
				return err
			}

			if report {
				texts := args
				if len(texts) == 0 {
					texts, err = readLines(cmd.InOrStdin())
					if err != nil {
						return err
					}
				}
				rep, reportErr := svc.Report(texts)
				if reportErr != nil {
					return reportErr
				}
				return writeJSON(cmd.OutOrStdout(), rep)
			}

			text := strings.Join(args, " ")
			if len(args) == 0 {
				raw, readErr := io.ReadAll(cmd.InOrStdin())
				if readErr != nil {
					return fmt.Errorf("read stdin: %w", readErr)
				}
				text = strings.TrimSpace(string(raw))
			}

			result, suggestions := svc.Audit(text)
			return writeJSON(cmd.OutOrStdout(), auditOutput{Result: result, Suggestions: suggestions})
		},
	}

	cmd.Flags().BoolVar(&report, "report", false, "audit each argument or stdin line and print a batch report")
	return cmd
}

// maxLineBytes caps a single stdin line read by --report.
const maxLineBytes = 4 << 20

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineBytes)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return lines, nil
}
