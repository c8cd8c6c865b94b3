package visualize

import (
	"context"
	"os/exec"
	"runtime"

	"github.com/YuminosukeSato/classplot/pkg/errors"
)

// Opener displays a rendered figure file and returns once the display is done.
type Opener func(ctx context.Context, path string) error

// SystemOpener opens path with the platform's default viewer and waits for
// the launcher command to exit. "open -W" and "start /wait" wait for the
// viewer; xdg-open does not.
func SystemOpener(ctx context.Context, path string) error {
	name, args := viewerCommand(runtime.GOOS)
	cmd := exec.CommandContext(ctx, name, append(args, path)...)
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "visualize: open %s with %s", path, name)
	}
	return nil
}

func viewerCommand(goos string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{"-W"}
	case "windows":
		return "cmd", []string{"/c", "start", "/wait", ""}
	default:
		return "xdg-open", nil
	}
}

// Show displays the figure at path with open, blocking until open returns.
// With SystemOpener on Linux, xdg-open usually returns once the viewer has
// started, so Show does not wait for the window to close there.
func Show(ctx context.Context, path string, open Opener) error {
	if open == nil {
		open = SystemOpener
	}
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "visualize: show")
	}
	return open(ctx, path)
}
