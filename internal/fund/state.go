package fund

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"NavSentinel/internal/model"
)

// recordFile is the on-disk shape: {"nav": 1.5, "fund": 30000.5, "time": 1712345678.123}.
// time is unix seconds with millisecond precision.
type recordFile struct {
	Nav  json.Number `json:"nav,omitempty"`
	Fund json.Number `json:"fund,omitempty"`
	Time json.Number `json:"time,omitempty"`
}

// LoadRecord reads the persisted record. Any read or parse failure, a missing
// file, or a record with missing fields yields nil.
func LoadRecord(filePath string) *model.Record {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Debug().Err(err).Str("path", filePath).Msg("read saved record")
		}
		return nil
	}
	var rf recordFile
	if err := json.Unmarshal(data, &rf); err != nil {
		log.Debug().Err(err).Str("path", filePath).Msg("decode saved record")
		return nil
	}
	rec, err := rf.record()
	if err != nil {
		log.Debug().Err(err).Str("path", filePath).Msg("incomplete saved record")
		return nil
	}
	return rec
}

func (rf recordFile) record() (*model.Record, error) {
	if rf.Nav == "" || rf.Fund == "" || rf.Time == "" {
		return nil, fmt.Errorf("missing field")
	}
	nav, err := decimal.NewFromString(rf.Nav.String())
	if err != nil {
		return nil, fmt.Errorf("nav: %w", err)
	}
	fund, err := decimal.NewFromString(rf.Fund.String())
	if err != nil {
		return nil, fmt.Errorf("fund: %w", err)
	}
	secs, err := decimal.NewFromString(rf.Time.String())
	if err != nil {
		return nil, fmt.Errorf("time: %w", err)
	}
	rec := &model.Record{Nav: nav, Fund: fund}
	if !secs.IsZero() {
		rec.Time = time.UnixMilli(secs.Shift(3).IntPart())
	}
	if !rec.Complete() {
		return nil, fmt.Errorf("zero field")
	}
	return rec, nil
}

// SaveRecord overwrites the record file. The new content is written to a
// temporary file in the same directory and renamed into place.
func SaveRecord(filePath string, rec *model.Record) error {
	rf := recordFile{
		Nav:  json.Number(rec.Nav.String()),
		Fund: json.Number(rec.Fund.String()),
		Time: json.Number(decimal.NewFromInt(rec.Time.UnixMilli()).Shift(-3).String()),
	}
	data, err := json.Marshal(rf)
	if err != nil {
		return err
	}

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(filePath)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), filePath)
}
