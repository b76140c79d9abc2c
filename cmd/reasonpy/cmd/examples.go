package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/reasonpy/reasonpy/internal/agent"
	"github.com/reasonpy/reasonpy/internal/config"
	"github.com/reasonpy/reasonpy/internal/pyexec"
	"github.com/reasonpy/reasonpy/internal/sandbox"
	"github.com/reasonpy/reasonpy/internal/tui"
)

var examplesCmd = &cobra.Command{
	Use:   "examples",
	Short: "Run an example query",
	Long:  "Pick an execution environment and an example query interactively, then run it through the agent.",
	RunE:  runExamples,
}

func runExamples(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig("")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Providers.OpenAI.APIKey == "" {
		fmt.Println("No LLM provider configured.")
		fmt.Println("Run 'reasonpy setup' or set OPENAI_API_KEY.")
		return nil
	}

	sandboxAvailable := cfg.Sandbox.APIKey != "" || cfg.Sandbox.Backend == "docker"
	envName, query, err := tui.PickExample(sandboxAvailable)
	if err != nil {
		return fmt.Errorf("example selection failed: %w", err)
	}

	env := agent.EnvLocal
	deps := agent.Deps{
		SearchAPIKey:     cfg.Tools.Search.APIKey,
		MaxSearchResults: cfg.Tools.Search.MaxResults,
	}

	var cleanups []func()
	runCleanups := func() {
		for _, fn := range cleanups {
			fn()
		}
	}

	if envName == "sandbox" {
		env = agent.EnvSandbox
		sess := sandbox.NewSession(sandboxConfigFrom(cfg))
		deps.Session = sess
		cleanups = append(cleanups, func() { sess.Close() })
	} else {
		timeout := time.Duration(cfg.Tools.Python.TimeoutSeconds) * time.Second
		repl, err := pyexec.NewREPL(cfg.Tools.Python.Bin, cfg.ArtifactsPath(), timeout)
		if err != nil {
			return fmt.Errorf("failed to start interpreter session: %w", err)
		}
		deps.REPL = repl
		cleanups = append(cleanups, func() { repl.Close() })
	}
	defer runCleanups()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		runCleanups()
		cancel()
		os.Exit(0)
	}()

	a, err := agent.Build(ctx, cfg, env, deps)
	if err != nil {
		return err
	}

	fmt.Printf("Query: %s\n\n", query)
	fmt.Println("Thinking...")
	fmt.Println()

	return sendQuery(a, query)
}
