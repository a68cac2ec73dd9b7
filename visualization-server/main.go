package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"net"
	"net/http"
	"path/filepath"
	"time"

	pb "antcolony/proto"
	"antcolony/shared"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// GridDTO is a lightweight JSON view sent to the browser
type GridDTO struct {
	Width  int       `json:"width"`
	Height int       `json:"height"`
	Cells  []CellDTO `json:"cells"`
	Tick   int       `json:"tick"`
	At     time.Time `json:"at"`
}

type CellDTO struct {
	X        int                `json:"x"`
	Y        int                `json:"y"`
	Food     float64            `json:"food"`
	Occupant *int               `json:"occupant"`
	Signals  map[string]float64 `json:"signals,omitempty"`
}

// gridStateSource is the part of the field client the SSE handler needs
type gridStateSource interface {
	GetGridState(ctx context.Context, opts ...grpc.CallOption) (shared.GridState, error)
}

func main() {
	addr := flag.String("http", ":8081", "HTTP listen address for visualization server")
	simGRPC := flag.String("grpc", "localhost:9090", "Simulation server gRPC address")
	staticDir := flag.String("static", "../visualization-client", "Directory with static web assets")
	pollMs := flag.Int("poll_ms", 250, "Polling interval in milliseconds for grid updates")
	flag.Parse()

	// Connect to simulation gRPC server
	log.Printf("Connecting to simulation gRPC at %s", *simGRPC)
	conn, err := grpc.NewClient(*simGRPC, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatalf("Failed to connect to simulation server: %v", err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			log.Printf("Error closing gRPC connection: %v", err)
		}
	}()

	client := pb.NewFieldServiceClient(conn)

	http.Handle("/events", eventsHandler(client, time.Duration(*pollMs)*time.Millisecond))

	// Static client assets
	absStaticDir, _ := filepath.Abs(*staticDir)
	log.Printf("Serving static files from %s", absStaticDir)
	http.Handle("/", http.FileServer(http.Dir(absStaticDir)))

	// Support automatic free port selection with -http :0
	ln, err := net.Listen("tcp", *addr)
	if err != nil {
		log.Fatalf("Failed to bind %s: %v", *addr, err)
	}
	log.Printf("Visualization server listening on %s", ln.Addr())
	if err := http.Serve(ln, nil); err != nil {
		log.Fatalf("HTTP server stopped: %v", err)
	}
}

// eventsHandler streams the field as server-sent events, one frame per poll
func eventsHandler(client gridStateSource, poll time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		ticker := time.NewTicker(poll)
		defer ticker.Stop()

		// send one immediately
		if err := sendGridState(r.Context(), client, w); err != nil {
			log.Printf("/events initial send error: %v", err)
			return
		}
		flusher.Flush()

		for {
			select {
			case <-r.Context().Done():
				return
			case <-ticker.C:
				if err := sendGridState(r.Context(), client, w); err != nil {
					log.Printf("/events send error: %v", err)
					return
				}
				flusher.Flush()
			}
		}
	}
}

// toGridDTO flattens a grid state for the browser
func toGridDTO(gs shared.GridState, at time.Time) GridDTO {
	cells := make([]CellDTO, 0, len(gs.Cells))
	for _, c := range gs.Cells {
		dto := CellDTO{
			X:        c.Position.X,
			Y:        c.Position.Y,
			Food:     c.Food,
			Occupant: c.Occupant,
		}
		if len(c.Signals) > 0 {
			dto.Signals = make(map[string]float64, len(c.Signals))
			for _, s := range c.Signals {
				dto.Signals[s.Identity] = s.Intensity
			}
		}
		cells = append(cells, dto)
	}

	return GridDTO{
		Width:  gs.Width,
		Height: gs.Height,
		Cells:  cells,
		Tick:   gs.Tick,
		At:     at,
	}
}

func sendGridState(ctx context.Context, client gridStateSource, w http.ResponseWriter) error {
	gs, err := client.GetGridState(ctx)
	if err != nil {
		return err
	}

	// SSE: write as data: <json>\n\n
	b, err := json.Marshal(toGridDTO(gs, time.Now()))
	if err != nil {
		return err
	}
	if _, err := w.Write([]byte("data: ")); err != nil {
		return err
	}
	if _, err := w.Write(b); err != nil {
		return err
	}
	if _, err := w.Write([]byte("\n\n")); err != nil {
		return err
	}
	return nil
}
