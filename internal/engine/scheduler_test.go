package engine

import (
	"testing"
	"time"
)

func TestScheduler_OrderAndTies(t *testing.T) {
	s := NewScheduler()
	var got []string

	s.After(200*time.Millisecond, "late", func() { got = append(got, "late") })
	s.After(100*time.Millisecond, "first", func() { got = append(got, "first") })
	s.After(100*time.Millisecond, "second", func() { got = append(got, "second") })

	if n := s.Advance(99 * time.Millisecond); n != 0 {
		t.Fatalf("fired %d tasks before due", n)
	}
	if n := s.Advance(time.Millisecond); n != 2 {
		t.Fatalf("fired %d, want 2", n)
	}
	s.Advance(time.Second)

	want := []string{"first", "second", "late"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("order[%d] = %s, want %s", i, got[i], want[i])
		}
	}
	if s.Now() != 1100*time.Millisecond {
		t.Errorf("Now = %v, want 1.1s", s.Now())
	}
}

func TestScheduler_Cancel(t *testing.T) {
	s := NewScheduler()
	fired := false
	task := s.After(time.Second, "spawn", func() { fired = true })

	if !s.Cancel(task.ID) {
		t.Fatal("Cancel returned false for pending task")
	}
	if s.Cancel(task.ID) {
		t.Error("second Cancel should return false")
	}
	s.Advance(2 * time.Second)

	if fired {
		t.Error("canceled task fired")
	}
	if !task.Canceled() || !task.Finished() {
		t.Error("canceled task should be finished and marked canceled")
	}
}

func TestScheduler_NestedTasksRelativeToDue(t *testing.T) {
	s := NewScheduler()
	var at []time.Duration

	var step func()
	step = func() {
		at = append(at, s.Now())
		if len(at) < 3 {
			s.After(150*time.Millisecond, "step", step)
		}
	}
	s.After(150*time.Millisecond, "step", step)

	// Один большой кадр выполняет всю цепочку
	if n := s.Advance(time.Second); n != 3 {
		t.Fatalf("fired %d, want 3", n)
	}
	want := []time.Duration{150 * time.Millisecond, 300 * time.Millisecond, 450 * time.Millisecond}
	for i := range want {
		if at[i] != want[i] {
			t.Errorf("step %d at %v, want %v", i, at[i], want[i])
		}
	}
}

func TestScheduler_RunUntilIdle(t *testing.T) {
	s := NewScheduler()
	count := 0
	var loop func()
	loop = func() {
		count++
		s.After(time.Second, "loop", loop)
	}
	s.After(0, "loop", loop)

	if n := s.RunUntilIdle(5); n != 5 {
		t.Errorf("RunUntilIdle fired %d, want 5", n)
	}
	if count != 5 {
		t.Errorf("count = %d", count)
	}
	if _, ok := s.NextDue(); !ok {
		t.Error("endless loop should leave a pending task")
	}

	if n := s.CancelAll(); n != 1 {
		t.Errorf("CancelAll = %d, want 1", n)
	}
	if s.Pending() != 0 {
		t.Error("queue not empty after CancelAll")
	}
}

func TestScheduler_DoneChannel(t *testing.T) {
	s := NewScheduler()
	task := s.After(10*time.Millisecond, "x", func() {})

	select {
	case <-task.Done():
		t.Fatal("Done closed before the task ran")
	default:
	}

	s.Advance(10 * time.Millisecond)
	select {
	case <-task.Done():
	default:
		t.Fatal("Done not closed after the task ran")
	}
	if task.Canceled() {
		t.Error("executed task marked canceled")
	}
}

func TestScheduler_DebugDump(t *testing.T) {
	s := NewScheduler()
	if dump := s.DebugDump(); dump == nil || len(dump) != 0 {
		t.Errorf("empty dump = %v, want []", dump)
	}
	s.After(time.Second, "spawn", func() {})
	dump := s.DebugDump()
	if len(dump) != 1 || dump[0]["name"] != "spawn" {
		t.Errorf("dump = %v", dump)
	}
}
