package version

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Smiexh/vswitch/domain/app"
)

// Tag will be set via ldflags by CI release workflow
var Tag = "version not set"

// Current returns the build tag without surrounding whitespace.
func Current() string {
	return strings.TrimSpace(Tag)
}

type Runner struct {
	out io.Writer
}

func NewRunner() *Runner { return &Runner{out: os.Stdout} }

func (r *Runner) Run(_ context.Context) error {
	_, err := fmt.Fprintf(r.out, "%s %s\n", app.Name, Current())
	return err
}
