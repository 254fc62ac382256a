package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/vietddude/outcall/internal/core/domain"
	"github.com/vietddude/outcall/internal/core/request"
	"github.com/vietddude/outcall/internal/infra/transport"
	"github.com/vietddude/outcall/internal/orchestrate"
)

var (
	callMethod     string
	callHeaders    []string
	callBody       string
	callTimeout    int64
	callMaxRetries int
	callBaseDelay  int64
	callJSON       bool
)

var callCmd = &cobra.Command{
	Use:   "call URL",
	Short: "Execute one orchestrated HTTP call",
	Long: `Execute a single outbound HTTP call with bounded retries.
On success the response body is written to stdout; with --json the full
orchestration result is printed instead. Exit code is 0 only on success.`,
	Args: cobra.ExactArgs(1),
	Run:  runCall,
}

func init() {
	callCmd.Flags().StringVarP(&callMethod, "method", "X", "GET", "HTTP method")
	callCmd.Flags().StringArrayVarP(&callHeaders, "header", "H", nil, `header in "Key: Value" form, repeatable`)
	callCmd.Flags().StringVarP(&callBody, "body", "d", "", "request body")
	callCmd.Flags().Int64Var(&callTimeout, "timeout", 0, "per-attempt timeout in milliseconds (default from config)")
	callCmd.Flags().IntVar(&callMaxRetries, "max-retries", -1, "retry ceiling (default from config)")
	callCmd.Flags().Int64Var(&callBaseDelay, "base-delay", 0, "backoff base in milliseconds (default from config)")
	callCmd.Flags().BoolVar(&callJSON, "json", false, "print the full orchestration result as JSON")
	rootCmd.AddCommand(callCmd)
}

func runCall(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	initLogging(cfg)

	headers, err := parseHeaders(callHeaders)
	if err != nil {
		slog.Error("Invalid header flag", "error", err)
		os.Exit(1)
	}

	timeout := callTimeout
	if timeout == 0 {
		timeout = cfg.Call.TimeoutMillis
	}
	maxRetries := callMaxRetries
	if maxRetries < 0 {
		maxRetries = cfg.Call.MaxRetriesOrDefault()
	}
	baseDelay := callBaseDelay
	if baseDelay == 0 {
		baseDelay = cfg.Call.BaseDelayMillis
	}

	desc, err := request.Validate(request.Raw{
		URL:           args[0],
		Method:        callMethod,
		Headers:       headers,
		Body:          callBody,
		TimeoutMillis: timeout,
	})
	if err != nil {
		slog.Error("Invalid request", "error", err)
		os.Exit(1)
	}

	tr := transport.NewHTTPTransport()
	orch := orchestrate.New(tr, orchestrate.Config{
		MaxRetries: maxRetries,
		BaseDelay:  time.Duration(baseDelay) * time.Millisecond,
		Jitter:     cfg.Call.Jitter,
	}, slog.Default())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result := orch.Execute(ctx, desc)

	if callJSON {
		out, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(out))
	} else if result.Outcome == domain.OutcomeSuccess {
		_, _ = os.Stdout.Write(result.ResponseBody)
	}

	if result.Outcome != domain.OutcomeSuccess {
		slog.Error("Call did not succeed",
			"outcome", result.Outcome,
			"status", result.FinalStatusCode,
			"attempts", len(result.Attempts),
			"elapsed_ms", result.TotalElapsedMillis)
		os.Exit(1)
	}
}

// parseHeaders converts repeated "Key: Value" flags into the raw header
// map. Exact duplicate keys are rejected here; case-insensitive
// collisions are left to the validator.
func parseHeaders(flags []string) (map[string]string, error) {
	if len(flags) == 0 {
		return nil, nil
	}

	headers := make(map[string]string, len(flags))
	for _, h := range flags {
		key, value, ok := strings.Cut(h, ":")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("malformed header %q, want \"Key: Value\"", h)
		}
		key = strings.TrimSpace(key)
		if _, exists := headers[key]; exists {
			return nil, fmt.Errorf("duplicate header %q", key)
		}
		headers[key] = strings.TrimSpace(value)
	}
	return headers, nil
}
