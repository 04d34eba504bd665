package backend

import (
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/foliodocs/folio/model"
)

// Backend converts a raw input file into a structured document using an
// external tool. Run blocks until extraction completes or ctx is
// cancelled; cancellation kills any in-flight subprocess.
type Backend interface {
	Run(ctx context.Context, inputFile string) (*model.Document, error)
}

// SubRunner performs a nested extraction run against an embedded-image
// side file. The pipeline injects one into the digital backend; the
// nested run uses an OCR-capable backend with an empty cleaner chain.
type SubRunner func(ctx context.Context, imageFile string) (*model.Document, error)

// RunTool invokes an external tool and maps process failures onto the
// backend error taxonomy: a missing binary becomes ErrToolNotFound, a
// non-zero exit becomes *ExtractionFailedError.
func RunTool(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	err := cmd.Run()
	if err == nil {
		return nil
	}

	if errors.Is(err, exec.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExtractionFailedError{Tool: name, ExitCode: exitErr.ExitCode()}
	}
	return err
}
