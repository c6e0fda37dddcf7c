package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/NivBraz/linefreq/internal/config"
	"github.com/NivBraz/linefreq/internal/models"
	"github.com/NivBraz/linefreq/pkg/counter"
	"github.com/NivBraz/linefreq/pkg/parser"
	"github.com/schollz/progressbar/v3"
)

// Outcome tells callers which way a run ended.
type Outcome int

const (
	// OutcomeFailed means no report was produced. Generate also returns an error.
	OutcomeFailed Outcome = iota
	// OutcomeEmpty means the input held no non-blank line and nothing was written.
	OutcomeEmpty
	// OutcomeReported means the report was printed.
	OutcomeReported
	// OutcomeSaved means the report was written to the output file.
	OutcomeSaved
)

func (o Outcome) String() string {
	switch o {
	case OutcomeEmpty:
		return "empty"
	case OutcomeReported:
		return "reported"
	case OutcomeSaved:
		return "saved"
	default:
		return "failed"
	}
}

// User-facing messages.
const (
	msgEmpty    = "Le fichier est vide ou ne contient que des lignes vides."
	msgSaved    = "Résultats enregistrés dans %s\n"
	msgNotFound = "Erreur : Le fichier '%s' n'existe pas.\n"
	msgFailure  = "Une erreur est survenue : %v\n"
)

// App represents the main application
type App struct {
	config *config.Config
	parser *parser.Parser
	out    io.Writer
	errOut io.Writer
	logger *log.Logger
}

// Option customizes an App.
type Option func(*App)

// WithErrWriter sends progress and diagnostics to w instead of os.Stderr.
func WithErrWriter(w io.Writer) Option {
	return func(a *App) {
		a.errOut = w
	}
}

// New creates a new instance of the application. Messages and the report
// itself are written to out.
func New(cfg *config.Config, out io.Writer, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("invalid configuration: nil config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	a := &App{
		config: cfg,
		out:    out,
		errOut: os.Stderr,
	}
	for _, opt := range opts {
		opt(a)
	}

	logOut := io.Discard
	if cfg.Verbose {
		logOut = a.errOut
	}
	a.logger = log.New(logOut, "linefreq: ", log.LstdFlags)
	a.parser = parser.New(cfg.Input.MaxLineSize, a.logger)

	return a, nil
}

// Run generates the report for the configured input and output files.
func (a *App) Run(ctx context.Context) (Outcome, error) {
	return a.Generate(ctx, a.config.Input.File, a.config.Output.File)
}

// Generate reads inputPath, counts its lines and either prints the ranked
// report or, when outputPath is not empty, saves it there. Every outcome,
// failures included, is also reported to the user as a message.
func (a *App) Generate(ctx context.Context, inputPath, outputPath string) (Outcome, error) {
	outcome, err := a.generate(ctx, inputPath, outputPath)
	if err != nil {
		a.logger.Printf("generating report for %s: %v", inputPath, err)
		if errors.Is(err, ErrInputNotFound) {
			fmt.Fprintf(a.out, msgNotFound, inputPath)
		} else {
			fmt.Fprintf(a.out, msgFailure, err)
		}
		return OutcomeFailed, err
	}
	return outcome, nil
}

func (a *App) generate(ctx context.Context, inputPath, outputPath string) (Outcome, error) {
	report, err := a.BuildReport(ctx, inputPath)
	if err != nil {
		return OutcomeFailed, err
	}

	if report.TotalLines == 0 {
		fmt.Fprintln(a.out, msgEmpty)
		return OutcomeEmpty, nil
	}

	text := parser.Render(report.Entries)

	if outputPath == "" {
		fmt.Fprintln(a.out, text)
		return OutcomeReported, nil
	}

	if err := writeFileAtomic(outputPath, []byte(text)); err != nil {
		return OutcomeFailed, fmt.Errorf("%w: %w", ErrIO, err)
	}
	a.logger.Printf("wrote %d entries to %s", len(report.Entries), outputPath)
	fmt.Fprintf(a.out, msgSaved, outputPath)
	return OutcomeSaved, nil
}

// BuildReport reads inputPath and returns its lines ranked by frequency.
// A report with TotalLines == 0 means the input had no non-blank line.
func (a *App) BuildReport(ctx context.Context, inputPath string) (*models.Report, error) {
	f, err := os.Open(inputPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, inputPath)
		}
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer f.Close()

	var r io.Reader = f
	if a.config.Output.ShowProgress {
		bar := a.newProgressBar(f, inputPath)
		pr := progressbar.NewReader(f, bar)
		r = &pr
		defer bar.Finish()
	}

	lines, err := a.parser.ParseLines(ctx, r)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidEncoding):
			return nil, fmt.Errorf("%s: %w", inputPath, err)
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return nil, err
		default:
			return nil, fmt.Errorf("%w: %s: %w", ErrIO, inputPath, err)
		}
	}

	table := counter.New()
	table.AddAll(lines)
	entries := table.Entries()
	parser.SortLineCounts(entries)

	a.logger.Printf("counted %d distinct lines out of %d", table.Len(), len(lines))

	return &models.Report{
		Entries:    entries,
		TotalLines: len(lines),
	}, nil
}

func (a *App) newProgressBar(f *os.File, name string) *progressbar.ProgressBar {
	size := int64(-1)
	if info, err := f.Stat(); err == nil && info.Mode().IsRegular() {
		size = info.Size()
	}

	return progressbar.NewOptions64(size,
		progressbar.OptionSetWriter(a.errOut),
		progressbar.OptionSetDescription("Reading "+filepath.Base(name)+"..."),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}

// writeFileAtomic replaces path with data through a temporary file in the
// same directory, so readers never see a partial report. A symlink at path
// is followed and its target replaced. An existing file keeps its
// permission bits, a new one gets 0644.
func writeFileAtomic(path string, data []byte) error {
	if target, err := filepath.EvalSymlinks(path); err == nil {
		path = target
	}

	perm := fs.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
