package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"plexnote/internal/logging"
	"plexnote/internal/media"
)

// Status is the delivery state of a ledger record.
type Status string

// Record lifecycle: created pending at admission, updated in place after
// delivery.
const (
	StatusPending Status = "pending"
	StatusSent    Status = "sent"
	StatusFail    Status = "fail"
)

// Record is one persisted ledger entry.
type Record struct {
	RatingKey string `json:"rating_key"`
	Signature string `json:"signature"`
	Timestamp int64  `json:"ts"`
	Status    Status `json:"status"`
}

// Ledger is the posted-items store.
type Ledger struct {
	path       string
	maxRecords int
	logger     *slog.Logger
	now        func() time.Time
}

// New constructs a Ledger backed by the JSON file at path. The ledger keeps
// at most maxRecords entries, evicting the oldest first.
func New(path string, maxRecords int, logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = logging.NewNop()
	}
	if maxRecords <= 0 {
		maxRecords = 200
	}
	return &Ledger{
		path:       path,
		maxRecords: maxRecords,
		logger:     logging.NewComponentLogger(logger, "ledger"),
		now:        time.Now,
	}
}

// Signature builds the duplicate-detection signature of an item. Two records
// match when either the rating key or the signature matches, so re-added
// items with fresh rating keys are still recognised.
func Signature(item *media.Item) string {
	title := strings.ToLower(strings.TrimSpace(firstNonEmpty(
		item.Title, item.ParentTitle, item.GrandparentTitle)))
	year := ""
	if y := item.Year.Int(); y != 0 {
		year = strconv.Itoa(y)
	} else {
		year = item.OriginallyAvailableAt
	}

	switch item.Kind() {
	case media.KindMovie:
		return fmt.Sprintf("movie::%s::%s", title, year)
	case media.KindSeason:
		return fmt.Sprintf("season::%s::s%d", title, item.SeasonNumber())
	case media.KindEpisode:
		return fmt.Sprintf("episode::%s::s%d::e%d", title, item.SeasonNumber(), item.EpisodeNumber())
	default:
		return fmt.Sprintf("show::%s::%s", title, year)
	}
}

// Admit records the item as pending unless a record with the same rating key
// or signature already exists. Returns false for duplicates.
func (l *Ledger) Admit(ratingKey, signature string) (bool, error) {
	admitted := false
	err := l.mutate(func(records []Record) []Record {
		for _, rec := range records {
			if rec.RatingKey == ratingKey || rec.Signature == signature {
				return records
			}
		}
		admitted = true
		return append(records, Record{
			RatingKey: ratingKey,
			Signature: signature,
			Timestamp: l.now().Unix(),
			Status:    StatusPending,
		})
	})
	if err != nil {
		return false, err
	}
	return admitted, nil
}

// SetStatus updates the first record matching the rating key or signature.
func (l *Ledger) SetStatus(ratingKey, signature string, status Status) error {
	return l.mutate(func(records []Record) []Record {
		for i := range records {
			if records[i].RatingKey == ratingKey || records[i].Signature == signature {
				records[i].Status = status
				break
			}
		}
		return records
	})
}

// Remove deletes all records matching the rating key or signature. Returns
// the number of removed records.
func (l *Ledger) Remove(key string) (int, error) {
	removed := 0
	err := l.mutate(func(records []Record) []Record {
		kept := records[:0]
		for _, rec := range records {
			if rec.RatingKey == key || rec.Signature == key {
				removed++
				continue
			}
			kept = append(kept, rec)
		}
		return kept
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// List returns all records, oldest first.
func (l *Ledger) List() ([]Record, error) {
	var records []Record
	err := l.mutate(func(current []Record) []Record {
		records = append([]Record(nil), current...)
		return current
	})
	return records, err
}

// Path returns the backing file path.
func (l *Ledger) Path() string { return l.path }

// mutate runs one locked read-modify-write cycle. The ledger is capped to
// the newest maxRecords entries on every write.
func (l *Ledger) mutate(fn func([]Record) []Record) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("create ledger directory: %w", err)
	}
	lock := flock.New(l.path)
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock ledger: %w", err)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			l.logger.Warn("unlock ledger failed", logging.Error(err))
		}
	}()

	records := l.read()
	records = fn(records)
	if len(records) > l.maxRecords {
		records = records[len(records)-l.maxRecords:]
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	if err := os.WriteFile(l.path, data, 0o644); err != nil {
		return fmt.Errorf("write ledger: %w", err)
	}
	return nil
}

// read loads the current records, substituting an empty ledger for missing
// or corrupt files.
func (l *Ledger) read() []Record {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			l.logger.Warn("read ledger failed", logging.Error(err))
		}
		return []Record{}
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return []Record{}
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		l.logger.Warn("ledger corrupt, starting empty", logging.Error(err))
		return []Record{}
	}
	return records
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
