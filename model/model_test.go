package model

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestTaskSerializationMatchesStoredLayout(t *testing.T) {
	tasks := []Task{
		{ID: 1700000000001, Text: "Call Bob", Completed: true, Priority: PriorityLow},
		{ID: 1700000000000, Text: "Buy milk", Completed: false, Priority: PriorityHigh},
	}

	data, err := json.Marshal(tasks)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	want := `[{"id":1700000000001,"text":"Call Bob","completed":true,"priority":"low"},` +
		`{"id":1700000000000,"text":"Buy milk","completed":false,"priority":"high"}]`
	if string(data) != want {
		t.Fatalf("unexpected layout\nwant=%s\ngot=%s", want, data)
	}

	var got []Task
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !reflect.DeepEqual(tasks, got) {
		t.Fatalf("round-trip mismatch\nwant=%+v\ngot=%+v", tasks, got)
	}
}

func TestUnknownPriorityDecodesAsLow(t *testing.T) {
	var tasks []Task
	data := `[{"id":1,"text":"a","completed":false,"priority":"urgent"},{"id":2,"text":"b","completed":false}]`
	if err := json.Unmarshal([]byte(data), &tasks); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if tasks[0].Priority != PriorityLow {
		t.Fatalf("expected unknown priority to decode as low, got %q", tasks[0].Priority)
	}
	if tasks[1].Priority.Normalize() != PriorityLow {
		t.Fatalf("expected missing priority to normalize to low, got %q", tasks[1].Priority)
	}
}

func TestNonStringPriorityDecodesAsLow(t *testing.T) {
	for _, raw := range []string{`null`, `2`, `true`, `{"p":"high"}`, `["high"]`} {
		var task Task
		data := `{"id":1,"text":"a","completed":false,"priority":` + raw + `}`
		if err := json.Unmarshal([]byte(data), &task); err != nil {
			t.Fatalf("unmarshal with priority %s failed: %v", raw, err)
		}
		if task.Priority.Normalize() != PriorityLow {
			t.Fatalf("expected priority %s to decode as low, got %q", raw, task.Priority)
		}
	}
}

func TestPriorityNextCycles(t *testing.T) {
	p := PriorityLow
	seen := []Priority{}
	for i := 0; i < 4; i++ {
		p = p.Next()
		seen = append(seen, p)
	}
	want := []Priority{PriorityMedium, PriorityHigh, PriorityLow, PriorityMedium}
	if !reflect.DeepEqual(want, seen) {
		t.Fatalf("unexpected cycle: %v", seen)
	}
}

func TestFilterValid(t *testing.T) {
	for _, f := range Filters {
		if !f.Valid() {
			t.Fatalf("expected %q to be valid", f)
		}
	}
	if Filter("todo").Valid() {
		t.Fatalf("expected todo to be rejected")
	}
}
