package player

import (
	"fmt"
	"os"
	"os/exec"

	"klon/internal/media"
)

// VLC implements the Player interface for VLC media player.
type VLC struct{}

func (v *VLC) Name() string { return "vlc" }

func (v *VLC) Available() bool {
	_, err := exec.LookPath("vlc")
	return err == nil
}

// Play launches VLC. VLC doesn't have IPC position tracking like mpv,
// so we return zeros for position and duration.
func (v *VLC) Play(source *media.Source, title string, startPos float64, subFile string) (float64, float64, error) {
	args := []string{
		source.URL,
		"--meta-title", title,
		"--play-and-exit",
	}

	if referer := source.Headers["Referer"]; referer != "" {
		args = append(args, "--http-referrer", referer)
	}
	if ua := source.Headers["User-Agent"]; ua != "" {
		args = append(args, "--http-user-agent", ua)
	}

	if startPos > 0 {
		args = append(args, fmt.Sprintf("--start-time=%.0f", startPos))
	}

	if subFile != "" {
		args = append(args, "--sub-file", subFile)
	}

	cmd := exec.Command("vlc", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			_ = exitErr // VLC exits non-zero on user close
			return 0, 0, nil
		}
		return 0, 0, fmt.Errorf("running vlc: %w", err)
	}

	return 0, 0, nil
}
