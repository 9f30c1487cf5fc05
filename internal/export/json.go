package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/nudge/internal/store"
)

type jsonExport struct {
	ExportedAt string        `json:"exported_at"`
	TodoCount  int           `json:"todo_count"`
	Todos      []jsonTodo    `json:"todos"`
	History    []jsonHistory `json:"history"`
}

type jsonTodo struct {
	ID            int64    `json:"id"`
	Text          string   `json:"text"`
	Completed     bool     `json:"completed"`
	DeadlineHours *float64 `json:"deadline_hours,omitempty"`
	CreatedAt     string   `json:"created_at"`
}

type jsonHistory struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Action    string `json:"action"`
	Timestamp string `json:"timestamp"`
	TodoID    *int64 `json:"todo_id,omitempty"`
	Info      string `json:"info,omitempty"`
}

func ToJSON(todos []store.Todo, history []store.HistoryEntry, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		TodoCount:  len(todos),
	}

	for _, t := range todos {
		export.Todos = append(export.Todos, jsonTodo{
			ID:            t.ID,
			Text:          t.Text,
			Completed:     t.IsCompleted,
			DeadlineHours: t.DeadlineHours,
			CreatedAt:     t.CreatedAt.Local().Format(time.RFC3339),
		})
	}

	for _, e := range history {
		info := ""
		if e.AdditionalInfo != nil {
			info = *e.AdditionalInfo
		}
		export.History = append(export.History, jsonHistory{
			ID:        e.ID,
			Text:      e.TodoText,
			Action:    e.Action,
			Timestamp: e.Timestamp.Local().Format(time.RFC3339),
			TodoID:    e.TodoID,
			Info:      info,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
