package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/reasonpy/reasonpy/internal/agent"
	"github.com/reasonpy/reasonpy/internal/config"
	"github.com/reasonpy/reasonpy/internal/pyexec"
	"github.com/reasonpy/reasonpy/internal/sandbox"
)

var (
	messageFlag string
	sandboxFlag bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Chat with the agent",
	Long:  "Start an interactive session with the Python execution agent, or send a single query.",
	RunE:  runRun,
}

func init() {
	runCmd.Flags().StringVarP(&messageFlag, "message", "m", "", "Send a single query and exit")
	runCmd.Flags().BoolVar(&sandboxFlag, "sandbox", false, "Execute code in the isolated sandbox instead of the local interpreter")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig("")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Providers.OpenAI.APIKey == "" {
		fmt.Println("No LLM provider configured.")
		fmt.Println("Run 'reasonpy setup' or set OPENAI_API_KEY.")
		return nil
	}
	if cfg.Tools.Search.APIKey == "" {
		fmt.Println("Note: TAVILY_API_KEY not set, web search is disabled.")
	}

	env := agent.EnvLocal
	if sandboxFlag {
		env = agent.EnvSandbox
	}

	deps := agent.Deps{
		SearchAPIKey:     cfg.Tools.Search.APIKey,
		MaxSearchResults: cfg.Tools.Search.MaxResults,
	}

	// The cleanup list is shared between the deferred teardown and the signal
	// handler, so the sandbox is released however the process ends.
	var cleanups []func()
	runCleanups := func() {
		for _, fn := range cleanups {
			fn()
		}
	}

	switch env {
	case agent.EnvSandbox:
		sess := sandbox.NewSession(sandboxConfigFrom(cfg))
		if !sess.Available() {
			fmt.Println("Warning: sandbox not initialized. Executions will fail until a sandbox API key is configured.")
		}
		deps.Session = sess
		cleanups = append(cleanups, func() { sess.Close() })
	default:
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
		fmt.Println("\nGoodbye!")
		runCleanups()
		cancel()
		os.Exit(0)
	}()

	a, err := agent.Build(ctx, cfg, env, deps)
	if err != nil {
		return err
	}

	if messageFlag != "" {
		return sendQuery(a, messageFlag)
	}

	return runInteractive(ctx, a, env)
}

// sandboxConfigFrom maps the file configuration onto sandbox settings.
func sandboxConfigFrom(cfg *config.Config) sandbox.Config {
	sc := sandbox.DefaultConfig()
	sc.Backend = sandbox.Backend(cfg.Sandbox.Backend)
	sc.APIKey = cfg.Sandbox.APIKey
	if cfg.Sandbox.BaseURL != "" {
		sc.BaseURL = cfg.Sandbox.BaseURL
	}
	if cfg.Sandbox.Image != "" {
		sc.Image = cfg.Sandbox.Image
	}
	if cfg.Sandbox.TimeoutSeconds > 0 {
		sc.Timeout = time.Duration(cfg.Sandbox.TimeoutSeconds) * time.Second
	}
	return sc
}

func sendQuery(a *agent.Agent, query string) error {
	answer, err := a.Invoke(query)
	if err != nil {
		return fmt.Errorf("agent run failed: %w", err)
	}
	fmt.Println(answer)
	return nil
}

func runInteractive(ctx context.Context, a *agent.Agent, env agent.Environment) error {
	fmt.Println("reasonpy Interactive Mode")
	if env == agent.EnvSandbox {
		fmt.Println("Code runs in the isolated sandbox.")
	} else {
		fmt.Println("Code runs in the local Python interpreter.")
	}
	fmt.Println("Type your query and press Enter. Type 'exit' or 'quit' to leave.")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		fmt.Print("You: ")
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		switch strings.ToLower(input) {
		case "exit", "quit":
			fmt.Println("Goodbye!")
			return nil
		case "/help":
			printHelp(env)
			continue
		}

		if err := sendQuery(a, input); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			fmt.Printf("Error: %v\n", err)
		}
		fmt.Println()
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("input error: %w", err)
	}

	return nil
}

func printHelp(env agent.Environment) {
	fmt.Println()
	fmt.Println("reasonpy Interactive Mode Commands:")
	fmt.Println("  /help     - Show this help message")
	fmt.Println("  exit/quit - Exit the session")
	fmt.Println()
	fmt.Println("Available Tools:")
	if env == agent.EnvSandbox {
		fmt.Println("  - install_and_run_python: Install packages and run code in the sandbox")
		fmt.Println("  - cleanup_sandbox: Release the sandbox when done")
	} else {
		fmt.Println("  - run_python: Run code in the persistent local interpreter")
	}
	fmt.Println("  - web_search: Search the web (if configured)")
	fmt.Println("  - web_fetch: Fetch content from URLs (if configured)")
	fmt.Println()
}
