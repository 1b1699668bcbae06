package player

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"klon/internal/media"
)

// MPV implements the Player interface for mpv.
// Uses exec.Command with explicit args (no shell interpretation)
// and IPC via Unix socket at a randomized temp path.
type MPV struct{}

func (m *MPV) Name() string { return "mpv" }

func (m *MPV) Available() bool {
	_, err := exec.LookPath("mpv")
	return err == nil
}

// Play launches mpv with the given source and returns the final playback
// position and the stream duration.
func (m *MPV) Play(source *media.Source, title string, startPos float64, subFile string) (float64, float64, error) {
	// Create randomized IPC socket path (prevents symlink attacks)
	socketDir, err := os.MkdirTemp("", "klon-mpv-*")
	if err != nil {
		return 0, 0, fmt.Errorf("creating temp dir for mpv socket: %w", err)
	}
	defer os.RemoveAll(socketDir)

	socketPath := filepath.Join(socketDir, "socket")

	// Build args as explicit slice — each arg is separate, no shell interpretation
	args := []string{
		source.URL,
		"--force-media-title=" + title,
		"--input-ipc-server=" + socketPath,
		"--really-quiet",
	}

	if fields := headerFields(source.Headers); fields != "" {
		args = append(args, "--http-header-fields="+fields)
	}
	if ua := source.Headers["User-Agent"]; ua != "" {
		args = append(args, "--user-agent="+ua)
	}

	if startPos > 0 {
		args = append(args, fmt.Sprintf("--start=+%.0f", startPos))
	}

	if subFile != "" {
		args = append(args, "--sub-file="+subFile)
	}

	cmd := exec.Command("mpv", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Start(); err != nil {
		return 0, 0, fmt.Errorf("starting mpv: %w", err)
	}

	// The tracker ends when mpv closes the socket; receive after Wait so the
	// result is never read while the goroutine still writes it.
	type playback struct{ pos, dur float64 }
	tracked := make(chan playback, 1)
	go func() {
		pos, dur := m.trackPosition(socketPath)
		tracked <- playback{pos, dur}
	}()

	// mpv returns non-zero on user quit, which is normal
	_ = cmd.Wait()

	pb := <-tracked
	return pb.pos, pb.dur, nil
}

// headerFields renders headers (except User-Agent, which has its own flag)
// in mpv's comma-separated "Name: value" format, sorted for stable args.
func headerFields(headers map[string]string) string {
	keys := make([]string, 0, len(headers))
	for k := range headers {
		if k == "User-Agent" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make([]string, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, k+": "+headers[k])
	}
	return strings.Join(fields, ",")
}

// trackPosition polls mpv's IPC socket for the playback position and duration.
func (m *MPV) trackPosition(socketPath string) (float64, float64) {
	var lastPos, duration float64

	// Wait for socket to appear
	for i := 0; i < 50; i++ {
		if _, err := os.Stat(socketPath); err == nil {
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return 0, 0
	}
	defer conn.Close()

	scanner := bufio.NewScanner(conn)

	// Start observing time-pos and duration properties
	for i, prop := range []string{"time-pos", "duration"} {
		cmd := map[string]interface{}{
			"command":    []interface{}{"observe_property", i + 1, prop},
			"request_id": 100 + i,
		}
		data, _ := json.Marshal(cmd)
		data = append(data, '\n')
		conn.Write(data)
	}

	for scanner.Scan() {
		line := scanner.Text()
		var event struct {
			Event string  `json:"event"`
			Name  string  `json:"name"`
			Data  float64 `json:"data"`
		}
		if err := json.Unmarshal([]byte(line), &event); err != nil {
			continue
		}
		switch {
		case event.Name == "time-pos" && event.Data > 0:
			lastPos = event.Data
		case event.Name == "duration" && event.Data > 0:
			duration = event.Data
		}
	}

	return lastPos, duration
}
