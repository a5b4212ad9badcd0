package app

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestExportSnapshotReflectsView(t *testing.T) {
	svc := NewService(nil, sequentialIDs(), fixedClock, ServiceConfig{})
	ctx := context.Background()
	if _, err := svc.StartDrag(ctx, "02-03"); err != nil {
		t.Fatalf("StartDrag() error = %v", err)
	}

	snap := svc.ExportSnapshot(ctx)
	if snap.Version != SnapshotVersion {
		t.Fatalf("unexpected version %q", snap.Version)
	}
	if !snap.ExportedAt.Equal(fixedClock()) {
		t.Fatalf("unexpected export time %v", snap.ExportedAt)
	}
	if snap.ActiveID != "02-03" || snap.SessionID != "s-1" {
		t.Fatalf("unexpected session fields %#v", snap)
	}
	if len(snap.Containers) != 4 || len(snap.ItemIDs()) != 9 {
		t.Fatalf("unexpected shape %d containers %d items", len(snap.Containers), len(snap.ItemIDs()))
	}
	list := snap.Containers[1].Items[2]
	if list.Title != "List" || !strings.HasPrefix(list.Body, "- List") || list.StyleTag != "string" {
		t.Fatalf("unexpected item %#v", list)
	}
	if snap.Containers[3].Items == nil {
		t.Fatal("expected empty container to export an empty list")
	}
}

func TestSnapshotJSONShape(t *testing.T) {
	svc := NewService(nil, nil, fixedClock, ServiceConfig{})
	raw, err := json.Marshal(svc.ExportSnapshot(context.Background()))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	text := string(raw)
	for _, want := range []string{`"version":"sortboard.snapshot.v1"`, `"id":"04"`, `"items":[]`, `"style_tag":"orange bold"`} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %s in %s", want, text)
		}
	}
	if strings.Contains(text, "active_id") {
		t.Fatalf("expected idle snapshot to omit active_id, got %s", text)
	}
}
