package media

import (
	"encoding/json"
	"testing"
)

func TestTaskStatusTransitions(t *testing.T) {
	all := []TaskStatus{StatusStarting, StatusProcessing, StatusCompleted, StatusError}
	allowed := map[TaskStatus]map[TaskStatus]bool{
		StatusStarting:   {StatusProcessing: true, StatusError: true},
		StatusProcessing: {StatusProcessing: true, StatusCompleted: true, StatusError: true},
	}

	for _, from := range all {
		for _, to := range all {
			if got, want := from.CanTransition(to), allowed[from][to]; got != want {
				t.Fatalf("%s -> %s: expected %v, got %v", from, to, want, got)
			}
		}
	}
}

func TestTaskStatusIsTerminal(t *testing.T) {
	if StatusStarting.IsTerminal() || StatusProcessing.IsTerminal() {
		t.Fatalf("expected starting and processing to be non-terminal")
	}
	if !StatusCompleted.IsTerminal() || !StatusError.IsTerminal() {
		t.Fatalf("expected completed and error to be terminal")
	}
}

func TestTaskRecordJSON(t *testing.T) {
	data, err := json.Marshal(StartingRecord())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"progress":0,"status":"starting","message":"Starting processing..."}`
	if string(data) != want {
		t.Fatalf("expected %s, got %s", want, data)
	}

	done := CompletedRecord()
	if done.Progress != 100 || done.Status != StatusCompleted {
		t.Fatalf("unexpected completed record %+v", done)
	}
}
