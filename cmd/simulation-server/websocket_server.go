package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"antcolony/shared"
	"antcolony/world"

	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

// subscriber is a websocket client receiving tick broadcasts. gorilla/websocket allows a
// single concurrent writer, so every write goes through mu.
type subscriber struct {
	id   int
	conn *websocket.Conn
	mu   sync.Mutex
}

func (sub *subscriber) send(msg shared.ServerMessage) error {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	if err := sub.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return sub.conn.WriteJSON(msg)
}

// WebSocketServer wraps the simulation core with WebSocket functionality
type WebSocketServer struct {
	core        *SimulationCore
	upgrader    websocket.Upgrader
	subscribers map[int]*subscriber
	nextID      int
	maxTicks    int
	mu          sync.Mutex
	isRunning   bool
	stopChan    chan struct{}
	done        chan struct{}
}

// NewWebSocketServer creates a new WebSocket simulation server. maxTicks of 0 runs
// the tick loop until Stop.
func NewWebSocketServer(core *SimulationCore, maxTicks int) *WebSocketServer {
	return &WebSocketServer{
		core: core,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow connections from any origin
			},
		},
		subscribers: make(map[int]*subscriber),
		maxTicks:    maxTicks,
		stopChan:    make(chan struct{}),
		done:        make(chan struct{}),
	}
}

// Subscribe upgrades the request and streams tick events to the client until it disconnects
func (s *WebSocketServer) Subscribe(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] Failed to upgrade connection: %v", err)
		return
	}

	s.mu.Lock()
	sub := &subscriber{id: s.nextID, conn: conn}
	s.nextID++
	s.subscribers[sub.id] = sub
	s.mu.Unlock()

	log.Printf("[ws] Subscriber %d connected", sub.id)
	go s.handleSubscriber(sub)
}

// handleSubscriber reads client messages until the connection drops
func (s *WebSocketServer) handleSubscriber(sub *subscriber) {
	defer s.dropSubscriber(sub)

	for {
		var msg shared.ClientMessage
		if err := sub.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[ws] Subscriber %d read error: %v", sub.id, err)
			}
			return
		}

		reply := s.HandleMessage(msg)
		if err := sub.send(reply); err != nil {
			log.Printf("[ws] Failed to reply to subscriber %d: %v", sub.id, err)
			return
		}
	}
}

func (s *WebSocketServer) dropSubscriber(sub *subscriber) {
	s.mu.Lock()
	delete(s.subscribers, sub.id)
	s.mu.Unlock()
	sub.conn.Close()
	log.Printf("[ws] Subscriber %d disconnected", sub.id)
}

// HandleMessage applies a client message to the core and builds the reply
func (s *WebSocketServer) HandleMessage(msg shared.ClientMessage) shared.ServerMessage {
	reply := shared.ServerMessage{Type: shared.MessageReply}

	var err error
	switch msg.Type {
	case shared.MessageDeposit:
		if msg.Deposit == nil {
			err = fmt.Errorf("%w: deposit message without payload", ErrInvalidRequest)
			break
		}
		_, err = s.core.Deposit(*msg.Deposit)
	case shared.MessageFood, shared.MessageGrab:
		if msg.Food == nil {
			err = fmt.Errorf("%w: %s message without payload", ErrInvalidRequest, msg.Type)
			break
		}
		var resp shared.FoodResponse
		if msg.Type == shared.MessageFood {
			resp, err = s.core.PlaceFood(*msg.Food)
		} else {
			resp, err = s.core.GrabFood(*msg.Food)
		}
		reply.Food = &resp
	case shared.MessagePlaceAnt, shared.MessageRemoveAnt:
		if msg.Ant == nil {
			err = fmt.Errorf("%w: %s message without payload", ErrInvalidRequest, msg.Type)
			break
		}
		var resp shared.AntRequest
		if msg.Type == shared.MessagePlaceAnt {
			resp, err = s.core.PlaceAnt(*msg.Ant)
		} else {
			resp, err = s.core.RemoveAnt(*msg.Ant)
		}
		reply.Ant = &resp
	default:
		err = fmt.Errorf("%w: unknown message type %q", ErrInvalidRequest, msg.Type)
	}

	if err != nil {
		reply.Message = err.Error()
		reply.Food = nil
		reply.Ant = nil
		return reply
	}
	reply.Success = true
	return reply
}

// Broadcast sends a tick event to every subscriber
func (s *WebSocketServer) Broadcast(event shared.SimulationTickEvent) {
	s.mu.Lock()
	subs := make([]*subscriber, 0, len(s.subscribers))
	for _, sub := range s.subscribers {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	msg := shared.ServerMessage{Type: shared.MessageTick, Tick: &event, Success: true}
	var wg sync.WaitGroup
	for _, sub := range subs {
		wg.Add(1)
		go func(sub *subscriber) {
			defer wg.Done()
			if err := sub.send(msg); err != nil {
				log.Printf("[ws] Broadcast to subscriber %d failed: %v", sub.id, err)
				sub.conn.Close()
			}
		}(sub)
	}
	wg.Wait()
}

// Tick advances the simulation by one step and broadcasts the result
func (s *WebSocketServer) Tick() shared.SimulationTickEvent {
	tickNumber, events := s.core.Tick()

	extinguished := make([]shared.SignalRef, 0, len(events))
	for _, ev := range events {
		if ev.Type == world.SignalExtinguishedEvent {
			extinguished = append(extinguished, ev.Ref())
		}
	}

	event := shared.SimulationTickEvent{
		TickNumber:   tickNumber,
		Timestamp:    time.Now(),
		GridState:    s.core.GetGridState(),
		Extinguished: extinguished,
	}
	s.Broadcast(event)
	return event
}

// Start begins the simulation loop
func (s *WebSocketServer) Start() {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = true
	s.mu.Unlock()

	go s.simulationLoop()
}

// simulationLoop runs the main simulation loop
func (s *WebSocketServer) simulationLoop() {
	defer close(s.done)

	ticker := time.NewTicker(s.core.TickRate)
	defer ticker.Stop()

	// Initial state
	s.core.PrintState()

	for i := 0; s.maxTicks == 0 || i < s.maxTicks; i++ {
		select {
		case <-s.stopChan:
			log.Println("[ws] Simulation stopped")
			return
		case tickTime := <-ticker.C:
			tickStart := time.Now()
			event := s.Tick()
			s.core.PrintState()
			log.Printf("Tick %d at %s completed in %v", event.TickNumber, tickTime.Format(time.RFC3339), time.Since(tickStart))
		}
	}

	log.Println("Simulation finished.")
}

// Done is closed once the simulation loop exits
func (s *WebSocketServer) Done() <-chan struct{} {
	return s.done
}

// Stop gracefully shuts down the simulation
func (s *WebSocketServer) Stop() {
	log.Println("Shutting down WebSocket simulation server...")

	s.mu.Lock()
	wasRunning := s.isRunning
	if s.isRunning {
		s.isRunning = false
		close(s.stopChan)
	}

	// Close all subscriber connections
	for _, sub := range s.subscribers {
		sub.conn.Close()
	}
	s.mu.Unlock()

	if wasRunning {
		<-s.done
	}
}

// HealthCheck reports liveness
func (s *WebSocketServer) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
}

// Status returns the current grid state
func (s *WebSocketServer) Status(w http.ResponseWriter, r *http.Request) {
	gridState := s.core.GetGridState()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(gridState)
}

// Routes registers the HTTP handlers on mux
func (s *WebSocketServer) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/ws", s.Subscribe)
	mux.HandleFunc("/health", s.HealthCheck)
	mux.HandleFunc("/status", s.Status)
}
