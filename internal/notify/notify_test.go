package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pressplan/pressplan/internal/label"
	"github.com/pressplan/pressplan/internal/models"
	"github.com/pressplan/pressplan/internal/stats"
	"github.com/rs/zerolog"
)

type fakeAdapter struct {
	name string
	sent []string
	fail bool
}

func (f *fakeAdapter) Name() string { return f.name }

func (f *fakeAdapter) Send(ctx context.Context, text string) error {
	if f.fail {
		return errors.New("boom")
	}
	f.sent = append(f.sent, text)
	return nil
}

func TestBroadcast_ContinuesPastFailures(t *testing.T) {
	bad := &fakeAdapter{name: "bad", fail: true}
	good := &fakeAdapter{name: "good"}
	n := New(zerolog.Nop(), bad, good)

	n.Broadcast(context.Background(), "hello")

	if len(good.sent) != 1 || good.sent[0] != "hello" {
		t.Errorf("good adapter got %v", good.sent)
	}
}

func TestEnabled(t *testing.T) {
	if New(zerolog.Nop()).Enabled() {
		t.Error("Enabled() = true with no adapters")
	}
	if !New(zerolog.Nop(), &fakeAdapter{name: "a"}).Enabled() {
		t.Error("Enabled() = false with an adapter")
	}
}

func TestDailyDigest(t *testing.T) {
	day := time.Date(2026, 2, 11, 0, 0, 0, 0, time.UTC)
	items := []models.ScheduledItem{
		{Date: day, Status: label.StatusDone},
		{Date: day, Status: label.StatusTodo},
		{Date: day.AddDate(0, 0, 1), Status: label.StatusTodo},
	}
	r := stats.ComputeMonth(items, 2026, time.February)

	got := DailyDigest("alice", day, r)
	for _, want := range []string{
		"alice",
		"Wed Feb 11",
		"2 scheduled, 1 done, 1 remaining (50%)",
		"This week: 1/3 done",
		"Month: 1/3 done",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("digest missing %q:\n%s", want, got)
		}
	}
}

func TestDailyDigest_EmptyDay(t *testing.T) {
	day := time.Date(2026, 2, 11, 0, 0, 0, 0, time.UTC)
	r := stats.ComputeMonth(nil, 2026, time.February)

	got := DailyDigest("alice", day, r)
	if !strings.Contains(got, "nothing scheduled") {
		t.Errorf("digest = %q, want a nothing-scheduled line", got)
	}
}
