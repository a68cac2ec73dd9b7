package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"antcolony/shared"

	"google.golang.org/grpc"
)

type fakeSource struct {
	state shared.GridState
	err   error
}

func (f *fakeSource) GetGridState(ctx context.Context, opts ...grpc.CallOption) (shared.GridState, error) {
	return f.state, f.err
}

func TestToGridDTO(t *testing.T) {
	occupant := 3
	gs := shared.GridState{
		Width:  4,
		Height: 2,
		Tick:   9,
		Cells: []shared.CellState{
			{
				Position: shared.Position{X: 1, Y: 0},
				Food:     2,
				Occupant: &occupant,
				Signals: []shared.SignalState{
					{Identity: "food", Intensity: 1.5, Decay: 1},
					{Identity: "home", Intensity: 0.5, Decay: 1},
				},
			},
			{Position: shared.Position{X: 3, Y: 1}, Food: 1},
		},
	}
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	dto := toGridDTO(gs, at)
	if dto.Width != 4 || dto.Height != 2 || dto.Tick != 9 || !dto.At.Equal(at) {
		t.Errorf("Unexpected header %+v", dto)
	}
	if len(dto.Cells) != 2 {
		t.Fatalf("Expected 2 cells, got %d", len(dto.Cells))
	}
	first := dto.Cells[0]
	if first.X != 1 || first.Y != 0 || first.Food != 2 || first.Occupant == nil || *first.Occupant != 3 {
		t.Errorf("Unexpected first cell %+v", first)
	}
	if first.Signals["food"] != 1.5 || first.Signals["home"] != 0.5 {
		t.Errorf("Unexpected signals %v", first.Signals)
	}
	if dto.Cells[1].Signals != nil {
		t.Errorf("Expected no signal map for a food-only cell, got %v", dto.Cells[1].Signals)
	}
}

func TestEventsHandler_SendsFrame(t *testing.T) {
	src := &fakeSource{state: shared.GridState{Width: 2, Height: 2, Tick: 1}}
	srv := httptest.NewServer(eventsHandler(src, time.Hour))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Expected text/event-stream, got %q", ct)
	}

	line, err := bufio.NewReader(resp.Body).ReadString('\n')
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(line, "data: ") {
		t.Fatalf("Expected SSE data line, got %q", line)
	}
	var dto GridDTO
	if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &dto); err != nil {
		t.Fatal(err)
	}
	if dto.Width != 2 || dto.Tick != 1 {
		t.Errorf("Unexpected frame %+v", dto)
	}
}

func TestEventsHandler_SourceError(t *testing.T) {
	src := &fakeSource{err: errors.New("unavailable")}
	rec := httptest.NewRecorder()
	eventsHandler(src, time.Hour)(rec, httptest.NewRequest(http.MethodGet, "/events", nil))
	if body := rec.Body.String(); strings.Contains(body, "data:") {
		t.Errorf("Expected no frame when the source fails, got %q", body)
	}
}
