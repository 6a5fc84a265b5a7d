package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/hestjs/create-hest-app/internal/config"
	"github.com/hestjs/create-hest-app/internal/createapp"
	"github.com/hestjs/create-hest-app/internal/dirguard"
	"github.com/hestjs/create-hest-app/internal/installer"
	"github.com/hestjs/create-hest-app/internal/logging"
	"github.com/hestjs/create-hest-app/internal/pkgname"
	"github.com/hestjs/create-hest-app/internal/prompt"
	"github.com/hestjs/create-hest-app/internal/scaffold"
	"github.com/hestjs/create-hest-app/internal/style"
	"github.com/hestjs/create-hest-app/internal/updater"
	"github.com/hestjs/create-hest-app/internal/vcs"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	flagEslint           bool
	flagNoEslint         bool
	flagUseNpm           bool
	flagUsePnpm          bool
	flagUseYarn          bool
	flagUseBun           bool
	flagSkipInstall      bool
	flagTemplate         string
	flagSwagger          bool
	flagOffline          bool
	flagResetPreferences bool
	flagTemplatesDir     string
	flagVerbose          bool
)

func init() {
	f := rootCmd.Flags()
	f.BoolVar(&flagEslint, "eslint", false, "Initialize with ESLint config.")
	f.BoolVar(&flagNoEslint, "no-eslint", false, "Skip ESLint configuration.")
	f.BoolVar(&flagUseNpm, "use-npm", false, "Explicitly tell the CLI to bootstrap the application using npm.")
	f.BoolVar(&flagUsePnpm, "use-pnpm", false, "Explicitly tell the CLI to bootstrap the application using pnpm.")
	f.BoolVar(&flagUseYarn, "use-yarn", false, "Explicitly tell the CLI to bootstrap the application using Yarn.")
	f.BoolVar(&flagUseBun, "use-bun", false, "Explicitly tell the CLI to bootstrap the application using Bun.")
	f.BoolVar(&flagSkipInstall, "skip-install", false, "Explicitly tell the CLI to skip installing packages.")
	f.StringVar(&flagTemplate, "template", "", "Specify the template to use (base, cqrs).")
	f.BoolVar(&flagSwagger, "swagger", false, "Include Swagger/Scalar API documentation (adds ~12MB to build size).")
	f.BoolVar(&flagOffline, "offline", false, "Ask the package manager to install from its offline cache.")
	f.BoolVar(&flagResetPreferences, "reset-preferences", false, "Forget the answers remembered from previous runs.")
	f.StringVar(&flagTemplatesDir, "templates-dir", "", "Read templates from this directory instead of the bundled ones.")
	f.BoolVar(&flagVerbose, "verbose", false, "Log every pipeline step to stderr.")

	rootCmd.MarkFlagsMutuallyExclusive("eslint", "no-eslint")
	rootCmd.MarkFlagsMutuallyExclusive("use-npm", "use-pnpm", "use-yarn", "use-bun")
}

// cliFlags is the subset of option flags the operator actually set.
type cliFlags struct {
	Eslint         *bool
	Template       string
	Swagger        *bool
	PackageManager string
	SkipInstall    *bool
}

// interactive reports whether no option flag was given, in which case
// every option is asked for.
func (f cliFlags) interactive() bool {
	return f.Eslint == nil && f.Template == "" && f.Swagger == nil && f.PackageManager == ""
}

func flagsFrom(cmd *cobra.Command) cliFlags {
	var f cliFlags
	changed := cmd.Flags().Changed

	switch {
	case changed("eslint"):
		v := flagEslint
		f.Eslint = &v
	case changed("no-eslint"):
		v := !flagNoEslint
		f.Eslint = &v
	}
	if changed("swagger") {
		v := flagSwagger
		f.Swagger = &v
	}
	if changed("skip-install") {
		v := flagSkipInstall
		f.SkipInstall = &v
	}
	f.Template = flagTemplate

	switch {
	case flagUseNpm:
		f.PackageManager = string(installer.NPM)
	case flagUsePnpm:
		f.PackageManager = string(installer.PNPM)
	case flagUseYarn:
		f.PackageManager = string(installer.Yarn)
	case flagUseBun:
		f.PackageManager = string(installer.Bun)
	}
	return f
}

// resolveOptions merges flags over prompt answers over defaults.
func resolveOptions(f cliFlags, answers *config.Options, defaults config.Options) config.Options {
	base := defaults
	if answers != nil {
		base = *answers
	}

	final := base
	if f.Eslint != nil {
		final.Eslint = *f.Eslint
	}
	if f.Template != "" {
		final.Template = f.Template
	}
	if f.Swagger != nil {
		final.UseSwagger = *f.Swagger
	}
	if f.PackageManager != "" {
		final.PackageManager = f.PackageManager
	}
	if f.SkipInstall != nil {
		final.SkipInstall = *f.SkipInstall
	}
	return final
}

func defaultOptions() config.Options {
	return config.Options{
		Eslint:         true,
		Template:       scaffold.TemplateBase,
		PackageManager: string(installer.DetectFromUserAgent()),
	}
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	config.Load()
	_ = viper.BindPFlag(config.KeyTemplatesDir, cmd.Flags().Lookup("templates-dir"))
	log := logging.New(flagVerbose)
	defer log.Sync()

	prefs := config.DefaultPreferenceStore()
	if flagResetPreferences {
		if err := prefs.Reset(); err != nil {
			return err
		}
		fmt.Fprintf(out, "%s Preferences reset successfully\n", style.Green("✓"))
		return nil
	}

	ask := prompt.New(cmd.InOrStdin(), out)

	projectPath := ""
	if len(args) > 0 {
		projectPath = args[0]
	}
	if strings.TrimSpace(projectPath) == "" {
		name, err := ask.ProjectName()
		if err != nil {
			return err
		}
		projectPath = name
	}
	projectPath = strings.TrimSpace(projectPath)

	root, err := filepath.Abs(projectPath)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", projectPath, err)
	}
	appName := filepath.Base(root)

	if v := pkgname.Validate(appName); !v.Valid {
		fmt.Fprintf(cmd.ErrOrStderr(), "Could not create a project called %s because of npm naming restrictions:\n",
			style.Red(fmt.Sprintf("%q", appName)))
		for _, p := range v.Problems {
			fmt.Fprintf(cmd.ErrOrStderr(), "    %s %s\n", style.Red(style.Bold("*")), p)
		}
		return errReported
	}

	if info, err := os.Stat(root); err == nil && info.IsDir() {
		ok, err := dirguard.IsAcceptable(root, out)
		if err != nil {
			return err
		}
		if !ok {
			return errReported
		}
	}

	catalog, err := scaffold.LoadCatalog()
	if err != nil {
		return err
	}

	stored, err := prefs.Load()
	if err != nil {
		log.Warn("ignoring unreadable preferences", zap.String("path", prefs.Path()), zap.Error(err))
	}

	flags := flagsFrom(cmd)
	defaults := defaultOptions()
	var answers *config.Options
	if flags.interactive() {
		a, err := ask.Options(stored.Defaults(defaults), catalog)
		if err != nil {
			return err
		}
		answers = &a
	}
	final := resolveOptions(flags, answers, defaults)

	if answers != nil {
		if err := prefs.Save(*answers); err != nil {
			log.Warn("could not save preferences", zap.Error(err))
		}
	}

	pm, err := installer.ParsePackageManager(final.PackageManager)
	if err != nil {
		return err
	}

	req := createapp.Request{
		TargetPath:           projectPath,
		PackageManager:       pm,
		LintEnabled:          final.Eslint,
		SkipInstall:          final.SkipInstall,
		TemplateID:           final.Template,
		DocumentationVariant: final.UseSwagger,
		Offline:              flagOffline,
	}
	log.Debug("resolved request", zap.Any("request", req))

	orch := newOrchestrator(out, log, catalog)
	outcome := orch.RunWithRetry(ctx, req, ask)

	switch outcome.Kind {
	case createapp.KindOK:
		outcome.Summary.Render(out)
		notifyUpdate(ctx, out, log)
		return nil
	case createapp.KindConflict:
		return errReported
	case createapp.KindRetryable:
		if outcome.RetryDeclined {
			return nil
		}
	}

	renderAbort(out, outcome.Err)
	notifyUpdate(ctx, out, log)
	return errReported
}

// newOrchestrator wires the production pipeline. Tests replace it.
var newOrchestrator = func(out io.Writer, log *zap.Logger, catalog *scaffold.Catalog) *createapp.Orchestrator {
	src, dir := scaffold.DefaultSource(config.TemplatesDir())
	log.Debug("template source", zap.String("dir", dir))

	return createapp.New(
		scaffold.NewResolver(src, dir),
		scaffold.NewMaterializer(src),
		installer.New(),
		vcs.New(log),
		createapp.WithOutput(out),
		createapp.WithLogger(log),
		createapp.WithDocumentationNote(catalog.DocumentationNote),
	)
}

// renderAbort prints the failure the way an operator expects: the failing
// command for install errors, a bug-report request for anything else.
func renderAbort(w io.Writer, err error) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Aborting installation.")

	var ie *installer.InstallError
	var dl *createapp.DownloadError
	switch {
	case errors.As(err, &ie):
		fmt.Fprintf(w, "  %s has failed.\n", style.Cyan(ie.Command))
	case errors.As(err, &dl):
		fmt.Fprintf(w, "  %s\n", style.Red(dl.Error()))
	default:
		fmt.Fprintf(w, "%s\n  %v\n", style.Red("Unexpected error. Please report it as a bug:"), err)
	}
	fmt.Fprintln(w)
}

func notifyUpdate(ctx context.Context, w io.Writer, log *zap.Logger) {
	if config.UpdateCheckDisabled() || buildVersion == "" || buildVersion == "dev" {
		return
	}
	u := updater.New(buildVersion, updater.WithRegistry(config.RegistryURL()))
	cmd := installer.GlobalInstallCommand(installer.DetectFromUserAgent(), u.Package())
	if !u.Notify(ctx, w, config.Dir(), cmd) {
		log.Debug("no update notice", zap.String("version", buildVersion))
	}
}
