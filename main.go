// Package main provides the entry point for the voice-cli application.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/Alec-Hermesmeyer/voice-cli/internal/assistant"
	"github.com/Alec-Hermesmeyer/voice-cli/internal/command"
	"github.com/Alec-Hermesmeyer/voice-cli/internal/config"
	"github.com/Alec-Hermesmeyer/voice-cli/internal/platform"
	"github.com/Alec-Hermesmeyer/voice-cli/internal/voice"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile string
	runSetup   bool
	editConfig bool
	listCmds   bool
	cacheInfo  bool

	// errCommandFailed signals a failed action whose message was already
	// printed; main exits 1 without repeating it.
	errCommandFailed = errors.New("command failed")

	rootCmd = &cobra.Command{
		Use:   "voice-cli [PHRASE...]",
		Short: "A voice assistant for your terminal",
		Long: paragraph(
			fmt.Sprintf("\nType %s and voice-cli runs the matching action. With no arguments it listens interactively, one phrase per line.", keyword("a phrase")),
		),
		Example:       "  voice-cli\n  voice-cli open downloads\n  voice-cli --list",
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.ArbitraryArgs,
		RunE:          execute,
	}
)

func execute(cmd *cobra.Command, args []string) error {
	if viper.GetBool("debug") {
		log.SetLevel(log.DebugLevel)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	switch {
	case runSetup:
		return setupFlow(cmd.InOrStdin(), os.Stdout, configFile, cfg)
	case editConfig:
		return editConfigFile(configFile, cfg)
	case listCmds || viper.GetBool("commands"):
		printRegistry(os.Stdout, command.Default())
		return nil
	case cacheInfo:
		return printCacheInfo(os.Stdout, cfg)
	}

	session := newSession(cfg)

	// Remaining arguments form one phrase, executed exactly once.
	if len(args) > 0 {
		phrase := strings.Join(args, " ")
		if ok := session.RunOnce(cmd.Context(), phrase); !ok {
			return errCommandFailed
		}
		return nil
	}

	return runInteractive(session)
}

// loadConfig resolves the config file path and loads it with environment
// and flag overrides applied.
func loadConfig() (config.Config, error) {
	if configFile == "" {
		path, err := config.DefaultPath()
		if err != nil {
			return config.Config{}, err
		}
		configFile = path
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return cfg, err
	}

	if dir := viper.GetString("cache.dir"); dir != "" {
		cfg.Cache.Dir = dir
	}
	if max := viper.GetInt64("cache.max_bytes"); max > 0 {
		cfg.Cache.MaxBytes = max
	}
	return cfg, nil
}

// newSession wires the dispatch pipeline from the loaded configuration.
func newSession(cfg config.Config) *assistant.Session {
	resolver := platform.NewResolver()
	runner := platform.NewRunner(viper.GetDuration("timeout"))

	var narrator assistant.Narrator
	if cache, err := voice.NewCache(cfg.CacheDir(), cfg.Cache.MaxBytes); err != nil {
		log.Warn("voice cache unavailable, falling back to text", "err", err)
		narrator = textNarrator{}
	} else {
		synth := voice.NewElevenLabs(cfg.Voice)
		player := voice.NewExecPlayer(resolver, runner)
		narrator = voice.NewSpeaker(cfg, synth, cache, player, os.Stdout)
	}

	return &assistant.Session{
		Registry: command.Default(),
		Narrator: narrator,
		Env:      command.NewEnv(resolver, runner),
		In:       os.Stdin,
		Out:      os.Stdout,
	}
}

// textNarrator prints responses when the voice pipeline cannot be built.
type textNarrator struct{}

func (textNarrator) Speak(_ context.Context, text string) {
	fmt.Println(text)
}

func runInteractive(session *assistant.Session) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// A caught interrupt ends the session cleanly.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		fmt.Println("\nGoodbye!")
		os.Exit(0)
	}()

	if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Println(paragraph(fmt.Sprintf("Listening. Type a phrase, or %s to see what I understand.", keyword("help"))))
		session.Prompt = prompt()
	}

	return session.Loop(ctx)
}

func printRegistry(w *os.File, reg *command.Registry) {
	fmt.Fprintln(w, paragraph(fmt.Sprintf("\n%s knows these phrases:", keyword("voice-cli"))))
	fmt.Fprint(w, assistant.FormatRegistry(reg))
}

func printCacheInfo(w *os.File, cfg config.Config) error {
	cache, err := voice.NewCache(cfg.CacheDir(), cfg.Cache.MaxBytes)
	if err != nil {
		return err
	}
	count, size, err := cache.Info()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Cache directory: %s\n", cache.Dir)
	fmt.Fprintf(w, "Entries: %d\n", count)
	fmt.Fprintf(w, "Size: %s\n", humanize.Bytes(uint64(size))) //nolint:gosec
	if cache.MaxBytes > 0 {
		fmt.Fprintf(w, "Limit: %s\n", humanize.Bytes(uint64(cache.MaxBytes))) //nolint:gosec
	} else {
		fmt.Fprintln(w, "Limit: unbounded")
	}
	return nil
}

func main() {
	closer, err := setupLog()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errCommandFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		_ = closer()
		os.Exit(1)
	}
	_ = closer()
}

func init() {
	if len(CommitSHA) >= 7 {
		rootCmd.SetVersionTemplate("{{.Version}} (" + CommitSHA[0:7] + ")\n")
	} else {
		rootCmd.SetVersionTemplate("{{.Version}}\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is the user config dir)")
	rootCmd.Flags().BoolP("version", "v", false, "print the version")
	rootCmd.Flags().BoolVar(&runSetup, "setup", false, "run the interactive setup flow")
	rootCmd.Flags().BoolVar(&editConfig, "edit", false, "open the config file in your $EDITOR")
	rootCmd.Flags().BoolVar(&listCmds, "list", false, "list the phrases voice-cli understands")
	rootCmd.Flags().Bool("commands", false, "alias for --list")
	_ = rootCmd.Flags().MarkHidden("commands")
	rootCmd.Flags().BoolVar(&cacheInfo, "cache-info", false, "show voice cache statistics")
	rootCmd.Flags().String("cache-dir", "", "override the voice cache directory")
	rootCmd.Flags().Duration("timeout", 0, "timeout for spawned commands")
	rootCmd.Flags().Bool("debug", false, "enable debug logging")

	_ = viper.BindPFlag("cache.dir", rootCmd.Flags().Lookup("cache-dir"))
	_ = viper.BindPFlag("timeout", rootCmd.Flags().Lookup("timeout"))
	_ = viper.BindPFlag("debug", rootCmd.Flags().Lookup("debug"))
	_ = viper.BindPFlag("commands", rootCmd.Flags().Lookup("commands"))

	viper.SetDefault("timeout", "10s")
	viper.SetDefault("cache.max_bytes", 0)

	viper.SetEnvPrefix("voice")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}
