package models

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

// gormTag extracts the gorm tag from a struct field.
func gormTag(t *testing.T, typ reflect.Type, fieldName string) string {
	t.Helper()
	f, ok := typ.FieldByName(fieldName)
	if !ok {
		t.Fatalf("%s.%s: field not found", typ.Name(), fieldName)
	}
	return f.Tag.Get("gorm")
}

// assertGormTag checks that a struct field's gorm tag contains the expected value.
func assertGormTag(t *testing.T, typ reflect.Type, fieldName, expected string) {
	t.Helper()
	tag := gormTag(t, typ, fieldName)
	if !strings.Contains(tag, expected) {
		t.Errorf("%s.%s gorm tag = %q, want to contain %q", typ.Name(), fieldName, tag, expected)
	}
}

func TestScheduledItem_Fields(t *testing.T) {
	typ := reflect.TypeOf(ScheduledItem{})

	assertGormTag(t, typ, "ID", "primaryKey")
	assertGormTag(t, typ, "ID", "size:32")
	assertGormTag(t, typ, "OwnerID", "not null")
	assertGormTag(t, typ, "ClientID", "not null")
	assertGormTag(t, typ, "Date", "not null")
	assertGormTag(t, typ, "Kind", "default:content")
	assertGormTag(t, typ, "Type", "default:post")
	assertGormTag(t, typ, "Title", "not null")
	assertGormTag(t, typ, "Description", "type:text")
	assertGormTag(t, typ, "Status", "default:todo")
	assertGormTag(t, typ, "Status", "index")
	assertGormTag(t, typ, "SortOrder", "not null")
}

func TestScheduledItem_Delegated(t *testing.T) {
	self := "alice"
	other := "bob"
	empty := ""

	cases := []struct {
		name string
		item ScheduledItem
		want bool
	}{
		{"unassigned", ScheduledItem{OwnerID: "alice"}, false},
		{"assigned to owner", ScheduledItem{OwnerID: "alice", AssignedTo: &self}, false},
		{"assigned to other", ScheduledItem{OwnerID: "alice", AssignedTo: &other}, true},
		{"empty assignee", ScheduledItem{OwnerID: "alice", AssignedTo: &empty}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.item.Delegated(); got != tc.want {
				t.Errorf("Delegated() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestScheduledItem_Day(t *testing.T) {
	it := ScheduledItem{Date: time.Date(2026, 2, 11, 15, 30, 45, 0, time.UTC)}
	got := it.Day()
	want := time.Date(2026, 2, 11, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Day() = %v, want %v", got, want)
	}
}

func TestClientCadenceSetting_Fields(t *testing.T) {
	typ := reflect.TypeOf(ClientCadenceSetting{})

	assertGormTag(t, typ, "OwnerID", "primaryKey")
	assertGormTag(t, typ, "ClientID", "primaryKey")
	assertGormTag(t, typ, "ContentsPerWeek", "default:0")
}
