package app

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/omegaatt36/batchren/internal/adapter/fs"
	"github.com/omegaatt36/batchren/internal/adapter/planfile"
	"github.com/omegaatt36/batchren/internal/adapter/prompt"
	"github.com/omegaatt36/batchren/internal/adapter/regex"
	"github.com/omegaatt36/batchren/internal/config"
	"github.com/omegaatt36/batchren/internal/domain"
	"github.com/omegaatt36/batchren/internal/logging"
	"github.com/omegaatt36/batchren/internal/port"
	"github.com/omegaatt36/batchren/internal/service"
)

type options struct {
	configFile string
	verbose    int

	pattern   string
	name      string
	prefix    bool
	postfix   bool
	root      string
	globs     []string
	engine    string
	shortcuts bool
	output    string
	yes       bool
	strict    bool
}

// NewRootCommand builds the batchren command tree. stdin is used for the
// confirmation prompt.
func NewRootCommand(stdin *os.File, stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "batchren",
		Short:         "Batch-rename files by pattern, prefix or postfix",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "config file (default $XDG_CONFIG_HOME/"+config.DefaultFile+")")
	root.PersistentFlags().CountVarP(&opts.verbose, "verbose", "v", "increase log verbosity (repeatable)")

	preview := &cobra.Command{
		Use:   "preview",
		Short: "Show the new names without renaming anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPreview(cmd, opts, stdin, stderr)
		},
	}
	addSpecFlags(preview, opts)

	apply := &cobra.Command{
		Use:   "apply",
		Short: "Preview, confirm and rename",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runApply(cmd, opts, stdin, stderr)
		},
	}
	addSpecFlags(apply, opts)
	apply.Flags().BoolVarP(&opts.yes, "yes", "y", false, "skip the confirmation prompt")
	apply.Flags().BoolVar(&opts.strict, "strict", false, "refuse plans where several items get the same name")

	root.AddCommand(preview, apply)
	return root
}

func addSpecFlags(cmd *cobra.Command, opts *options) {
	f := cmd.Flags()
	f.StringVarP(&opts.pattern, "pattern", "p", "", "regular expression to replace in each name")
	f.StringVarP(&opts.name, "name", "n", "", "new name, regex replacement, prefix or postfix (default: first selected name); "+
		"with the re2 engine write ${1}x for group 1 followed by text, $1x names group \"1x\"")
	f.BoolVar(&opts.prefix, "prefix", false, "prepend --name instead of replacing")
	f.BoolVar(&opts.postfix, "postfix", false, "append --name instead of replacing")
	f.StringVarP(&opts.root, "root", "r", "", "directory to select files from")
	f.StringSliceVarP(&opts.globs, "glob", "g", nil, "doublestar glob selecting files below the root (repeatable)")
	f.StringVar(&opts.engine, "engine", "", "pattern engine: re2 or dotnet")
	f.BoolVar(&opts.shortcuts, "shortcuts", false, "expand [serial], [number], [any], [word] and [alpha] in patterns")
	f.StringVarP(&opts.output, "output", "o", "", "preview format: table or yaml")
}

// loadConfig reads the layered config and applies explicitly set flags on top.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return nil, err
	}

	f := cmd.Flags()
	if f.Changed("root") {
		cfg.Root = opts.root
	}
	if f.Changed("glob") {
		cfg.Globs = opts.globs
	}
	if f.Changed("engine") {
		cfg.Engine = opts.engine
	}
	if f.Changed("shortcuts") {
		cfg.Shortcuts = opts.shortcuts
	}
	if f.Changed("output") {
		cfg.Output = opts.output
	}
	if f.Lookup("yes") != nil && f.Changed("yes") {
		cfg.AssumeYes = opts.yes
	}
	if f.Lookup("strict") != nil && f.Changed("strict") {
		cfg.Strict = opts.strict
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

type session struct {
	app       *App
	selection port.SelectionProvider
	cfg       *config.Config
	ctx       context.Context
}

func newSession(cmd *cobra.Command, opts *options, stdin *os.File, stderr io.Writer) (*session, error) {
	logger := logging.New(stderr, opts.verbose)
	ctx := logger.WithContext(cmd.Context())

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return nil, err
	}

	compiler, err := regex.New(cfg.Engine, cfg.Shortcuts)
	if err != nil {
		return nil, err
	}

	fileSystem := &fs.OSFileSystem{}
	selection := service.NewSelectionService(fileSystem, cfg.Root, cfg.Globs...)
	planner := service.NewPlannerService(selection, compiler)
	executor := service.NewExecutorService(service.NewRenamerService(fileSystem))

	var confirmer port.Confirmer = prompt.NewTerminal(stdin)
	if cfg.AssumeYes {
		confirmer = prompt.Auto{}
	}

	application := NewApp(planner, executor, confirmer,
		WithLogger(logger),
		WithStrict(cfg.Strict),
		WithNamespace(service.Namespace),
	)
	return &session{app: application, selection: selection, cfg: cfg, ctx: ctx}, nil
}

// spec builds the rename spec from flags. Without --name the first selected
// item's name is used, so a single selected item starts from its own name.
func (s *session) spec(cmd *cobra.Command, opts *options) (domain.RenameSpec, error) {
	spec := domain.RenameSpec{
		Pattern:     opts.pattern,
		Replacement: opts.name,
		IsPrefix:    opts.prefix,
		IsPostfix:   opts.postfix,
	}
	if cmd.Flags().Changed("name") {
		return spec, nil
	}

	items, err := s.selection.Selection(s.ctx)
	if err != nil {
		return spec, errors.Errorf("reading selection: %w", err)
	}
	if len(items) > 0 {
		spec.Replacement = items[0].Name
		zerolog.Ctx(s.ctx).Info().Str("name", spec.Replacement).Msg("--name not set, using first selected name")
	}
	return spec, nil
}

func (s *session) preview(cmd *cobra.Command, spec domain.RenameSpec) (domain.Plan, error) {
	plan, collisions, err := s.app.Preview(s.ctx, spec)
	if err != nil {
		return nil, err
	}

	out := cmd.OutOrStdout()
	if s.cfg.Output == "yaml" {
		return plan, planfile.Encode(out, spec, plan, collisions)
	}
	if len(plan) == 0 {
		warnStyle.Fprintln(out, "Nothing selected")
		return plan, nil
	}
	return plan, renderPlan(out, plan, collisions)
}

func runPreview(cmd *cobra.Command, opts *options, stdin *os.File, stderr io.Writer) error {
	s, err := newSession(cmd, opts, stdin, stderr)
	if err != nil {
		return err
	}
	spec, err := s.spec(cmd, opts)
	if err != nil {
		return err
	}
	_, err = s.preview(cmd, spec)
	return err
}

func runApply(cmd *cobra.Command, opts *options, stdin *os.File, stderr io.Writer) error {
	s, err := newSession(cmd, opts, stdin, stderr)
	if err != nil {
		return err
	}
	spec, err := s.spec(cmd, opts)
	if err != nil {
		return err
	}

	plan, err := s.preview(cmd, spec)
	if err != nil {
		return err
	}
	if len(plan) == 0 {
		return nil
	}

	result, err := s.app.Apply(s.ctx, plan)
	if err != nil {
		return err
	}
	return renderResult(cmd.OutOrStdout(), result)
}
