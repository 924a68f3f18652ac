package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
)

type GameRecord struct {
	ID         int
	Challenger int // AgentConfig.ID
	Baseline   int // AgentConfig.ID
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type Writer struct {
	RunID   uuid.UUID
	baseDir string
}

// NewWriter creates <root>/<name>/<timestamp>-<run id> to hold the CSV files
// of one experiment run.
func NewWriter(root, name string) (*Writer, error) {
	runID := uuid.New()
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp+"-"+runID.String()[:8])
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		RunID:   runID,
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "depth", "duration", "opponents", "random"}
	return w.write("agent_configs.csv", header, len(configs), func(i int) []string {
		config := configs[i]
		return []string{
			strconv.Itoa(config.ID),
			strconv.Itoa(config.Depth),
			config.Duration.String(),
			config.Opponents,
			strconv.FormatBool(config.Random),
		}
	})
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "challenger", "baseline", "contestants", "winner", "start_time", "end_time", "duration", "ticks", "conversions"}
	return w.write("game_records.csv", header, len(records), func(i int) []string {
		record := records[i]
		return []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Challenger),
			strconv.Itoa(record.Baseline),
			strconv.Itoa(record.Contestants),
			record.Winner,
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalTicks),
			strconv.Itoa(record.Conversions),
		}
	})
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "tick", "agent", "action", "depth", "levels", "branches", "nodes", "opponents", "duration", "truncated"}
	return w.write("move_records.csv", header, len(records), func(i int) []string {
		record := records[i]
		return []string{
			strconv.Itoa(record.Game),
			strconv.FormatUint(record.Tick, 10),
			strconv.FormatUint(uint64(record.Agent), 10),
			record.Action,
			strconv.Itoa(record.Depth),
			strconv.Itoa(record.Levels),
			strconv.Itoa(record.Branches),
			strconv.Itoa(record.Nodes),
			record.Opponents,
			record.Duration.String(),
			strconv.FormatBool(record.Truncated),
		}
	})
}

func (w *Writer) write(file string, header []string, n int, row func(i int) []string) error {
	path := filepath.Join(w.baseDir, file)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", file, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", file, err)
	}
	for i := 0; i < n; i++ {
		if err := writer.Write(row(i)); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", file, i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
