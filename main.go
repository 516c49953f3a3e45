package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/urfave/cli/v2"
	"specgen/internal/specgen"
)

func main() {
	configureLogging()
	log.SetLevel(log.InfoLevel)

	os.Exit(run(os.Args, os.Stdout))
}

// run executes the CLI and returns the process exit code. Generated code is
// written to stdout; logs go to stderr.
func run(args []string, stdout io.Writer) int {
	if err := newApp(stdout).Run(args); err != nil {
		log.Error(err.Error())
		return specgen.ExitCode(err)
	}
	return specgen.ExitSuccess
}

func newApp(stdout io.Writer) *cli.App {
	return &cli.App{
		Name:      "specgen",
		Usage:     "compile mustache spec files into C test functions",
		ArgsUsage: "[FILE...]",
		Writer:    stdout,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "config file path"},
			&cli.StringFlag{Name: "entry", Usage: "harness function called by every test"},
			&cli.StringFlag{Name: "table", Usage: "name of the registration table"},
			&cli.StringFlag{Name: "header", Usage: "header to #include at the top of the output"},
			&cli.BoolFlag{Name: "verbose", Usage: "verbose logging"},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("verbose") {
				log.SetLevel(log.DebugLevel)
			}
			return nil
		},
		// Errors are logged and mapped to exit codes by run.
		ExitErrHandler: func(*cli.Context, error) {},
		Action:         generateCmd,
		Commands: []*cli.Command{
			{
				Name:      "check",
				Usage:     "validate spec files without generating code",
				ArgsUsage: "FILE...",
				Action:    checkCmd,
			},
			{
				Name:      "list",
				Usage:     "print the registered test names as JSON",
				ArgsUsage: "FILE...",
				Action:    listCmd,
			},
			{
				Name:  "init",
				Usage: "write a default config file",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "config", Usage: "config file path"},
					&cli.BoolFlag{Name: "force", Usage: "overwrite existing config"},
				},
				Action: initCmd,
			},
		},
	}
}

func generateCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	paths := c.Args().Slice()
	out, registry, err := specgen.Generate(paths, cfg)
	if err != nil {
		return err
	}
	if _, err := c.App.Writer.Write(out); err != nil {
		return err
	}
	log.Info("generated tests", "files", len(paths), "tests", registry.Len())
	return nil
}

func checkCmd(c *cli.Context) error {
	paths := c.Args().Slice()
	registry, err := specgen.Check(paths)
	if err != nil {
		return err
	}
	log.Info("check ok", "files", len(paths), "tests", registry.Len())
	return nil
}

func listCmd(c *cli.Context) error {
	registry, err := specgen.Check(c.Args().Slice())
	if err != nil {
		return err
	}
	return specgen.PrintRegistry(c.App.Writer, registry)
}

func initCmd(c *cli.Context) error {
	cfgPath := ""
	// --config may be given before or after the command name.
	for _, ctx := range c.Lineage() {
		if ctx.IsSet("config") {
			cfgPath = ctx.String("config")
			break
		}
	}
	if cfgPath == "" {
		cfgPath = specgen.DefaultConfigName
	}
	if err := specgen.Init(cfgPath, c.Bool("force")); err != nil {
		return err
	}
	log.Info("created", "path", cfgPath)
	return nil
}

// loadConfig starts from the config file, if any, and applies flag
// overrides on top.
func loadConfig(c *cli.Context) (specgen.Config, error) {
	cfg := specgen.DefaultConfig()
	if cfgPath := resolveConfigPath(c.String("config")); cfgPath != "" {
		loaded, err := specgen.LoadConfig(cfgPath)
		if err != nil {
			return cfg, err
		}
		cfg = *loaded
		log.Debug("config loaded", "path", cfgPath)
	}
	if c.IsSet("entry") {
		cfg.Entry = c.String("entry")
	}
	if c.IsSet("table") {
		cfg.Table = c.String("table")
	}
	if c.IsSet("header") {
		cfg.Header = c.String("header")
	}
	if err := specgen.ValidateConfig(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func resolveConfigPath(configPath string) string {
	if configPath != "" {
		return configPath
	}
	primary := filepath.Join(".", specgen.DefaultConfigName)
	if fileExists(primary) {
		return primary
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

func configureLogging() {
	log.SetOutput(os.Stderr)
	log.SetReportTimestamp(true)
	log.SetTimeFormat("15:04:05")
	log.SetPrefix("specgen")
	log.SetColorProfile(termenv.TrueColor)

	styles := log.DefaultStyles()
	styles.Levels[log.DebugLevel] = styles.Levels[log.DebugLevel].Foreground(lipgloss.Color("69")).Bold(true)
	styles.Levels[log.InfoLevel] = styles.Levels[log.InfoLevel].Foreground(lipgloss.Color("86")).Bold(true)
	styles.Levels[log.WarnLevel] = styles.Levels[log.WarnLevel].Foreground(lipgloss.Color("220")).Bold(true)
	styles.Levels[log.ErrorLevel] = styles.Levels[log.ErrorLevel].Foreground(lipgloss.Color("196")).Bold(true)
	styles.Prefix = styles.Prefix.Foreground(lipgloss.Color("245")).Bold(true)
	styles.Key = styles.Key.Foreground(lipgloss.Color("244"))
	log.SetStyles(styles)
}
