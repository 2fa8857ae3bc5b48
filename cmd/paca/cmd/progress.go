package cmd

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/paca-cli/paca"
)

// refreshInterval bounds how often the bar is redrawn.
const refreshInterval = 100 * time.Millisecond

// progressBar aggregates per-file transfer progress into one line.
// Update is safe for concurrent use.
type progressBar struct {
	mu    sync.Mutex
	w     io.Writer
	now   func() time.Time
	start time.Time
	last  time.Time

	completed map[string]int64
	totals    map[string]int64
	resumed   map[string]int64 // bytes already on disk when the file started
}

func newProgressBar(w io.Writer) *progressBar {
	return &progressBar{
		w:         w,
		now:       time.Now,
		start:     time.Now(),
		completed: make(map[string]int64),
		totals:    make(map[string]int64),
		resumed:   make(map[string]int64),
	}
}

func (b *progressBar) Update(p paca.Progress) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.resumed[p.File]; !ok {
		b.resumed[p.File] = p.Completed
	}
	b.completed[p.File] = p.Completed
	b.totals[p.File] = p.Total

	now := b.now()
	if now.Sub(b.last) < refreshInterval && p.Completed < p.Total {
		return
	}
	b.last = now
	b.render(now)
}

// Finish draws the final state and ends the line. It prints nothing when
// no transfer took place.
func (b *progressBar) Finish() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.completed) == 0 {
		return
	}
	b.render(b.now())
	fmt.Fprintln(b.w)
}

func (b *progressBar) render(now time.Time) {
	var current, total, transferred int64
	for file, n := range b.completed {
		current += n
		total += b.totals[file]
		transferred += n - b.resumed[file]
	}
	renderProgress(b.w, current, total, transferred, now.Sub(b.start))
}

// renderProgress renders the progress bar to the writer.
// Format: Downloading [============>                 ] 45% 1.20 GB/2.67 GB (5.2 MB/s, elapsed: 30s, remaining: 2m 15s)
// Speed counts only bytes transferred in this run, not resumed ones.
func renderProgress(w io.Writer, current, total, transferred int64, elapsed time.Duration) {
	var pct float64
	if total > 0 {
		pct = float64(current) / float64(total) * 100
	}

	var speed float64
	if elapsed.Seconds() > 0 && transferred > 0 {
		speed = float64(transferred) / elapsed.Seconds()
	}

	var remaining time.Duration
	if speed > 0 && current < total {
		remaining = time.Duration(float64(total-current)/speed) * time.Second
	}

	const barWidth = 30
	filled := int(pct / 100 * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}

	var bar string
	if filled >= barWidth {
		bar = strings.Repeat("=", barWidth)
	} else if filled > 0 {
		bar = strings.Repeat("=", filled) + ">" + strings.Repeat(" ", barWidth-filled-1)
	} else {
		bar = ">" + strings.Repeat(" ", barWidth-1)
	}

	fmt.Fprintf(w, "\r\x1b[KDownloading [%s] %.0f%% %s/%s (%s, elapsed: %s, remaining: %s)",
		bar, pct, formatSize(current), formatSize(total),
		formatSpeed(speed), formatDuration(elapsed), formatDuration(remaining))
}

func formatSize(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

func formatSpeed(bytesPerSec float64) string {
	const (
		KB = 1024
		MB = KB * 1024
	)

	if bytesPerSec >= MB {
		return fmt.Sprintf("%.1f MB/s", bytesPerSec/MB)
	}
	if bytesPerSec >= KB {
		return fmt.Sprintf("%.1f KB/s", bytesPerSec/KB)
	}
	return fmt.Sprintf("%.0f B/s", bytesPerSec)
}

// formatDuration formats a duration as "5s", "2m 30s" or "1h 5m".
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return "0s"
	}
	d = d.Round(time.Second)

	hours := int(d.Hours())
	mins := int(d.Minutes()) % 60
	secs := int(d.Seconds()) % 60

	switch {
	case hours > 0 && mins > 0:
		return fmt.Sprintf("%dh %dm", hours, mins)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	case mins > 0 && secs > 0:
		return fmt.Sprintf("%dm %ds", mins, secs)
	case mins > 0:
		return fmt.Sprintf("%dm", mins)
	default:
		return fmt.Sprintf("%ds", secs)
	}
}
