package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/nudge/internal/store"
)

func ToCSV(todos []store.Todo, history []store.HistoryEntry, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Todos section
	if err := w.Write([]string{"ID", "Text", "Completed", "Deadline (h)", "Created"}); err != nil {
		return err
	}
	for _, t := range todos {
		deadline := ""
		if t.DeadlineHours != nil {
			deadline = fmt.Sprintf("%.1f", *t.DeadlineHours)
		}
		row := []string{
			fmt.Sprintf("%d", t.ID),
			t.Text,
			fmt.Sprintf("%t", t.IsCompleted),
			deadline,
			t.CreatedAt.Local().Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	// History section
	if err := w.Write([]string{"History ID", "Text", "Action", "Timestamp", "Todo ID"}); err != nil {
		return err
	}
	for _, e := range history {
		todoID := ""
		if e.TodoID != nil {
			todoID = fmt.Sprintf("%d", *e.TodoID)
		}
		row := []string{
			fmt.Sprintf("%d", e.ID),
			e.TodoText,
			e.Action,
			e.Timestamp.Local().Format(time.RFC3339),
			todoID,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
