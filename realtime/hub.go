package realtime

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/harukimz/taskboard-app/models"
	"github.com/harukimz/taskboard-app/utils"
)

// Event types
const (
	EventTaskCreated    = "task_created"
	EventTaskUpdated    = "task_updated"
	EventTaskDeleted    = "task_deleted"
	EventProjectCreated = "project_created"
	EventProjectUpdated = "project_updated"
	EventProjectDeleted = "project_deleted"
	EventCommentCreated = "comment_created"
	EventCommentDeleted = "comment_deleted"
)

type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// sessionBuffer is how many pending events a session may queue before new
// events are dropped for it.
const sessionBuffer = 16

type session struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans mutation events out to every connected session. Delivery is
// best-effort: each session has its own buffered queue and a writer
// goroutine, so a slow or dead client never stalls the publisher.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*session
}

func NewHub() *Hub {
	return &Hub{sessions: make(map[string]*session)}
}

// Register adds a connection and returns its session id.
func (h *Hub) Register(conn *websocket.Conn) string {
	id := uuid.NewString()
	s := &session{
		conn: conn,
		send: make(chan []byte, sessionBuffer),
	}

	h.mu.Lock()
	h.sessions[id] = s
	h.mu.Unlock()

	go h.writePump(id, s)
	return id
}

// Unregister drops the session and closes its connection. Safe to call more
// than once for the same id.
func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	s, ok := h.sessions[id]
	if ok {
		delete(h.sessions, id)
		close(s.send)
		s.conn.Close()
	}
	h.mu.Unlock()
}

// Publish delivers the event to every session. It never blocks: a session
// whose queue is full simply misses the event.
func (h *Hub) Publish(evt Event) {
	data, err := json.Marshal(evt)
	if err != nil {
		utils.ErrorLogger.Errorf("broadcast: marshal %s: %v", evt.Type, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, s := range h.sessions {
		select {
		case s.send <- data:
		default:
			utils.ErrorLogger.Errorf("broadcast: session %s queue full, dropping %s", id, evt.Type)
		}
	}
}

// SessionCount returns the number of connected sessions.
func (h *Hub) SessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

func (h *Hub) writePump(id string, s *session) {
	for data := range s.send {
		if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Errorf("broadcast: session %s write failed: %v", id, err)
			h.Unregister(id)
			return
		}
	}
}

var defaultHub = NewHub()

// Default returns the hub the HTTP layer publishes to.
func Default() *Hub {
	return defaultHub
}

func BroadcastTaskCreated(task models.Task) {
	defaultHub.Publish(Event{Type: EventTaskCreated, Data: task})
}

func BroadcastTaskUpdated(task models.Task) {
	defaultHub.Publish(Event{Type: EventTaskUpdated, Data: task})
}

func BroadcastTaskDeleted(taskID uint) {
	defaultHub.Publish(Event{Type: EventTaskDeleted, Data: map[string]interface{}{"id": taskID}})
}

func BroadcastProjectCreated(project models.Project) {
	defaultHub.Publish(Event{Type: EventProjectCreated, Data: project})
}

func BroadcastProjectUpdated(project models.Project) {
	defaultHub.Publish(Event{Type: EventProjectUpdated, Data: project})
}

func BroadcastProjectDeleted(projectID uint) {
	defaultHub.Publish(Event{Type: EventProjectDeleted, Data: map[string]interface{}{"id": projectID}})
}

func BroadcastCommentCreated(comment models.Comment) {
	defaultHub.Publish(Event{Type: EventCommentCreated, Data: comment})
}

func BroadcastCommentDeleted(commentID, taskID uint) {
	defaultHub.Publish(Event{Type: EventCommentDeleted, Data: map[string]interface{}{
		"id":      commentID,
		"task_id": taskID,
	}})
}
