package health

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"FitTrack/internal/engine"
)

// exportFile is the JSON shape of a health export dropped by a
// companion sync tool: raw step and sleep samples.
type exportFile struct {
	Steps []stepSample  `json:"steps"`
	Sleep []sleepSample `json:"sleep"`
}

type stepSample struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

type sleepSample struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ExportSensor serves health metrics from a JSON export file and
// reloads it whenever the file changes. Load failures keep the last
// good snapshot; a sensor that never loaded reports zeros.
type ExportSensor struct {
	path string
	loc  *time.Location
	now  func() time.Time

	mu   sync.Mutex
	data exportFile

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewExportSensor loads the export file and starts watching it for
// changes. The file may not exist yet; the watcher picks it up when the
// sync tool first writes it.
func NewExportSensor(path string, loc *time.Location) (*ExportSensor, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create health watcher: %w", err)
	}
	// Watch the parent directory, not the file: the export may not
	// exist yet, and sync tools that replace it by rename would drop a
	// per-file watch after the first reload.
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch health export dir: %w", err)
	}

	s := &ExportSensor{
		path:    filepath.Clean(path),
		loc:     loc,
		now:     time.Now,
		watcher: w,
		done:    make(chan struct{}),
	}
	s.reload()
	go s.watch()
	return s, nil
}

func (s *ExportSensor) watch() {
	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != s.path {
				continue
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				log.Printf("[INFO] health export changed: %s", event.Name)
				s.reload()
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[WARN] health watcher error: %v", err)
		case <-s.done:
			return
		}
	}
}

func (s *ExportSensor) reload() {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		log.Printf("[WARN] read health export: %v", err)
		return
	}
	var data exportFile
	if err := json.Unmarshal(raw, &data); err != nil {
		log.Printf("[WARN] parse health export: %v", err)
		return
	}
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
}

// TodaySteps sums step samples dated today.
func (s *ExportSensor) TodaySteps() int {
	today := engine.DayKey(s.now(), s.loc)

	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, sample := range s.data.Steps {
		if sample.Date == today {
			total += sample.Count
		}
	}
	return total
}

// WeeklySleepMinutes sums sleep sample durations overlapping the
// current week, clipped to [Monday midnight, now].
func (s *ExportSensor) WeeklySleepMinutes() int {
	now := s.now()
	weekStart := engine.WeekStart(now, s.loc)

	s.mu.Lock()
	defer s.mu.Unlock()
	var total time.Duration
	for _, sample := range s.data.Sleep {
		start, end := sample.Start, sample.End
		if !end.After(weekStart) || start.After(now) {
			continue
		}
		if start.Before(weekStart) {
			start = weekStart
		}
		if end.After(now) {
			end = now
		}
		total += end.Sub(start)
	}
	return int(total.Minutes())
}

// Close stops the file watcher.
func (s *ExportSensor) Close() error {
	close(s.done)
	return s.watcher.Close()
}
