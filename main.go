package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	orchestratorx "github.com/tanpawarit/a2a-support-desk/agent/agents/orchestrator"
	specialistx "github.com/tanpawarit/a2a-support-desk/agent/agents/specialist"
	contractx "github.com/tanpawarit/a2a-support-desk/agent/contract"
	protocolx "github.com/tanpawarit/a2a-support-desk/agent/protocol"
	storex "github.com/tanpawarit/a2a-support-desk/agent/store"
	configx "github.com/tanpawarit/a2a-support-desk/pkg/config"
	logx "github.com/tanpawarit/a2a-support-desk/pkg/logger"
	_ "github.com/tanpawarit/a2a-support-desk/pkg/logger/autoload"
)

// demoQueries are the scenarios run by the demo command, in order.
var demoQueries = []struct {
	Title string
	Query string
}{
	{"Simple: Get customer info", "Get customer information for ID 1"},
	{"Scenario 1 (Task Allocation): Help with account", "I need help with my account, customer ID 1"},
	{"Scenario 2 (Negotiation): Cancel + Billing issue", "I want to cancel my subscription but I'm having billing issues"},
	{"Scenario 3 (Multi-step): Active customers with open tickets", "Show me all active customers who have open tickets"},
	{"Escalation: Double charge refund", "I was charged twice, please refund immediately!"},
	{"Multi-intent: Update email + ticket history", "Update my email to new@email.com and show my ticket history for customer 1"},
}

type CLI struct {
	Serve ServeCmd `cmd:"" help:"Run the customer-support tool server."`
	Ask   AskCmd   `cmd:"" help:"Route a single query through the agents."`
	Demo  DemoCmd  `cmd:"" help:"Run the demo scenarios end to end."`
	Tools ToolsCmd `cmd:"" help:"List the tools exposed by a running server."`
	Seed  SeedCmd  `cmd:"" help:"Load the demo customers and tickets into an empty store."`

	EnvFile string `name:"env-file" help:"Path to a .env file." type:"path"`
}

func (c *CLI) configOptions() []configx.Option {
	if strings.TrimSpace(c.EnvFile) == "" {
		return nil
	}
	return []configx.Option{configx.WithEnvFile(c.EnvFile)}
}

// AfterApply re-reads the log settings once the env file is known.
func (c *CLI) AfterApply() error {
	logCfg, err := configx.New[logx.Config]("LOG", c.configOptions()...)
	if err != nil {
		return err
	}
	logx.Init(*logCfg)
	return nil
}

func (c *CLI) openStore(ctx context.Context) (*storex.SQLStore, storex.Config, error) {
	cfg, err := configx.New[storex.Config]("STORE", c.configOptions()...)
	if err != nil {
		return nil, storex.Config{}, err
	}
	st, err := storex.Open(ctx, *cfg)
	if err != nil {
		return nil, *cfg, err
	}
	return st, *cfg, nil
}

type ServeCmd struct {
	Seed bool `help:"Load the demo data when the store is empty."`
}

func (s *ServeCmd) Run(cli *CLI) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, storeCfg, err := cli.openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	if s.Seed || storeCfg.Seed {
		seeded, err := st.SeedIfEmpty(ctx)
		if err != nil {
			return err
		}
		log.Info().Bool("seeded", seeded).Msg("demo data checked")
	}

	srvCfg, err := configx.New[protocolx.ServerConfig]("MCP", cli.configOptions()...)
	if err != nil {
		return err
	}
	srv, err := protocolx.NewServer(st, *srvCfg, protocolx.WithServerLogger(logx.Component("protocol")))
	if err != nil {
		return err
	}
	return srv.ListenAndServe(ctx)
}

// AgentFlags selects where the agents send their tool calls.
type AgentFlags struct {
	Embedded bool `help:"Use an in-memory store and in-process server instead of a remote server."`
}

func (f AgentFlags) connect(ctx context.Context, cli *CLI) (*protocolx.Client, func(), error) {
	if !f.Embedded {
		cfg, err := configx.New[protocolx.ClientConfig]("MCP_CLIENT", cli.configOptions()...)
		if err != nil {
			return nil, nil, err
		}
		client, err := protocolx.NewClient(*cfg, protocolx.WithClientLogger(logx.Component("tool_client")))
		if err != nil {
			return nil, nil, err
		}
		return client, func() { _ = client.Close() }, nil
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	st, err := storex.Open(ctx, storex.Config{Driver: storex.DriverSQLite, DSN: dsn})
	if err != nil {
		return nil, nil, err
	}
	if _, err := st.SeedIfEmpty(ctx); err != nil {
		_ = st.Close()
		return nil, nil, err
	}
	srv, err := protocolx.NewServer(st, protocolx.ServerConfig{}, protocolx.WithServerLogger(logx.Component("protocol")))
	if err != nil {
		_ = st.Close()
		return nil, nil, err
	}
	client, err := protocolx.NewInProcessClient(srv, protocolx.WithClientLogger(logx.Component("tool_client")))
	if err != nil {
		_ = st.Close()
		return nil, nil, err
	}
	return client, func() {
		_ = client.Close()
		_ = st.Close()
	}, nil
}

func newOrchestrator(tools contractx.ToolCaller) (*orchestratorx.Orchestrator, error) {
	registry, err := specialistx.NewRegistry(tools)
	if err != nil {
		return nil, err
	}
	return orchestratorx.New(registry, orchestratorx.WithLogger(logx.Component("orchestrator")))
}

type AskCmd struct {
	AgentFlags `embed:""`

	JSON  bool     `help:"Print the result as JSON."`
	Query []string `arg:"" help:"The customer query."`
}

func (a *AskCmd) Run(cli *CLI) error {
	ctx := context.Background()
	client, closeFn, err := a.connect(ctx, cli)
	if err != nil {
		return err
	}
	defer closeFn()

	orch, err := newOrchestrator(client)
	if err != nil {
		return err
	}
	res, err := orch.HandleQuery(ctx, strings.Join(a.Query, " "))
	if err != nil {
		return err
	}

	if a.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	printResult(os.Stdout, res)
	return nil
}

type DemoCmd struct {
	AgentFlags `embed:""`
}

func (d *DemoCmd) Run(cli *CLI) error {
	ctx := context.Background()
	client, closeFn, err := d.connect(ctx, cli)
	if err != nil {
		return err
	}
	defer closeFn()

	orch, err := newOrchestrator(client)
	if err != nil {
		return err
	}

	rule := strings.Repeat("=", 70)
	for _, q := range demoQueries {
		fmt.Printf("\n%s\nTEST: %s\n%s\nUser Query: %s\n", rule, q.Title, rule, q.Query)
		res, err := orch.HandleQuery(ctx, q.Query)
		if err != nil {
			return fmt.Errorf("demo %q: %w", q.Title, err)
		}
		printResult(os.Stdout, res)
		fmt.Println(rule)
	}
	return nil
}

type ToolsCmd struct {
	AgentFlags `embed:""`
}

func (t *ToolsCmd) Run(cli *CLI) error {
	ctx := context.Background()
	client, closeFn, err := t.connect(ctx, cli)
	if err != nil {
		return err
	}
	defer closeFn()

	info, err := client.ServerInfo(ctx)
	if err != nil {
		return err
	}
	infos, err := client.Describe(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s\n", info.Name, info.Version)
	for _, ti := range infos {
		fmt.Printf("- %s: %s\n", ti.Name, ti.Desc)
	}
	return nil
}

type SeedCmd struct{}

func (s *SeedCmd) Run(cli *CLI) error {
	ctx := context.Background()
	st, _, err := cli.openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	seeded, err := st.SeedIfEmpty(ctx)
	if err != nil {
		return err
	}
	if seeded {
		fmt.Println("demo data loaded")
	} else {
		fmt.Println("store already has customers, nothing to do")
	}
	return nil
}

func printResult(w io.Writer, res contractx.RouterResult) {
	fmt.Fprintln(w, "\n--- Agent-to-Agent Trace ---")
	for _, e := range res.Trace {
		fmt.Fprintf(w, "• %s\n", e)
	}
	fmt.Fprintln(w, "\n--- Final Answer ---")
	fmt.Fprintln(w, res.FinalAnswer)
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("support-desk"),
		kong.Description("Multi-agent customer support over an MCP tool server."),
		kong.UsageOnError(),
	)
	if err := kctx.Run(&cli); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
