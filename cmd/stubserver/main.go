// Command stubserver is a development stand-in for the HR backend. It keeps
// sessions in memory, enforces one open session per employee, and pushes a
// work_session_update event to every SSE subscriber on each transition.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/segusengineering/worksync/internal/events"
	"github.com/segusengineering/worksync/internal/realtime"
	"github.com/segusengineering/worksync/internal/worksession"
)

func main() {
	addr := os.Getenv("STUB_ADDR")
	if addr == "" {
		addr = ":8000"
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	s := newServer()
	r := gin.Default()

	ws := r.Group("/api/employees/work-sessions")
	ws.Use(s.requireAuth)
	{
		ws.POST("/start_session/", s.startSession)
		ws.POST("/:id/pause/", s.pauseSession)
		ws.POST("/:id/resume/", s.resumeSession)
		ws.POST("/:id/end/", s.endSession)
		ws.GET("/current-session/", s.currentSession)
		ws.GET("/", s.listSessions)
	}
	st := r.Group("/api/employees/work-stats")
	st.Use(s.requireAuth)
	{
		st.GET("/my_stats/", s.myStats)
		st.GET("/all_employees/", s.allStats)
	}
	r.GET("/api/realtime/sse/work-sessions/", s.streamEvents)
	r.POST("/api/realtime/notify-session/", s.acceptNotification)

	slog.Info("stub backend listening", "addr", addr)
	if err := r.Run(addr); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

type server struct {
	mu       sync.Mutex
	nextID   int64
	sessions map[int64]*worksession.WorkSession

	subMu sync.Mutex
	subs  map[chan realtime.Frame]struct{}
}

func newServer() *server {
	return &server{
		nextID:   1,
		sessions: make(map[int64]*worksession.WorkSession),
		subs:     make(map[chan realtime.Frame]struct{}),
	}
}

// requireAuth accepts any non-empty bearer token and treats it as the
// employee identity. Good enough for local development.
func (s *server) requireAuth(c *gin.Context) {
	if employee(c) == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "authentication required"})
		return
	}
	c.Next()
}

func employee(c *gin.Context) string {
	const prefix = "Bearer "
	h := c.GetHeader("Authorization")
	if len(h) > len(prefix) && h[:len(prefix)] == prefix {
		return h[len(prefix):]
	}
	return ""
}

func (s *server) startSession(c *gin.Context) {
	var body struct {
		Notes string `json:"notes"`
	}
	_ = c.ShouldBindJSON(&body)

	emp := employee(c)
	s.mu.Lock()
	for _, sess := range s.sessions {
		if sess.Employee == emp && sess.Open() {
			s.mu.Unlock()
			c.JSON(http.StatusBadRequest, gin.H{"detail": "an open session already exists"})
			return
		}
	}
	now := time.Now()
	sess := &worksession.WorkSession{
		ID:             s.nextID,
		Employee:       emp,
		EmployeeName:   emp,
		StartTime:      now,
		Status:         worksession.StatusActive,
		TotalWorkTime:  "0:00:00",
		TotalPauseTime: "0:00:00",
		Notes:          body.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.nextID++
	s.sessions[sess.ID] = sess
	copied := *sess
	s.mu.Unlock()

	s.broadcast(events.KindSessionStarted, &copied)
	c.JSON(http.StatusCreated, copied)
}

func (s *server) pauseSession(c *gin.Context) {
	var body struct {
		Reason            string `json:"reason"`
		EstimatedDuration int    `json:"estimated_duration"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Reason == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "reason is required"})
		return
	}
	s.transition(c, worksession.StatusActive, worksession.StatusPaused, events.KindSessionPaused, func(sess *worksession.WorkSession, now time.Time) {
		sess.PauseStartTime = &now
	})
}

func (s *server) resumeSession(c *gin.Context) {
	s.transition(c, worksession.StatusPaused, worksession.StatusActive, events.KindSessionResumed, func(sess *worksession.WorkSession, now time.Time) {
		if sess.PauseStartTime != nil {
			paused := worksession.ParseClock(sess.TotalPauseTime) + now.Sub(*sess.PauseStartTime)
			sess.TotalPauseTime = worksession.FormatClock(paused)
			sess.PauseStartTime = nil
		}
	})
}

func (s *server) endSession(c *gin.Context) {
	s.transition(c, "", worksession.StatusCompleted, events.KindSessionEnded, func(sess *worksession.WorkSession, now time.Time) {
		if sess.Status == worksession.StatusPaused && sess.PauseStartTime != nil {
			paused := worksession.ParseClock(sess.TotalPauseTime) + now.Sub(*sess.PauseStartTime)
			sess.TotalPauseTime = worksession.FormatClock(paused)
			sess.PauseStartTime = nil
		}
		sess.EndTime = &now
		sess.TotalWorkTime = worksession.FormatClock(now.Sub(sess.StartTime))
	})
}

// transition applies one state change. An empty from matches any open state.
func (s *server) transition(c *gin.Context, from, to worksession.Status, kind events.Kind, mutate func(*worksession.WorkSession, time.Time)) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid session id"})
		return
	}

	s.mu.Lock()
	sess, ok := s.sessions[id]
	if !ok || sess.Employee != employee(c) {
		s.mu.Unlock()
		c.JSON(http.StatusNotFound, gin.H{"detail": "session not found"})
		return
	}
	validFrom := sess.Status == from || (from == "" && sess.Open())
	if !validFrom {
		s.mu.Unlock()
		c.JSON(http.StatusBadRequest, gin.H{"detail": fmt.Sprintf("session is %s", sess.Status)})
		return
	}
	now := time.Now()
	mutate(sess, now)
	sess.Status = to
	sess.UpdatedAt = now
	copied := *sess
	s.mu.Unlock()

	s.broadcast(kind, &copied)
	c.JSON(http.StatusOK, copied)
}

func (s *server) currentSession(c *gin.Context) {
	emp := employee(c)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sess := range s.sessions {
		if sess.Employee == emp && sess.Open() {
			c.JSON(http.StatusOK, *sess)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "no active session"})
}

func (s *server) listSessions(c *gin.Context) {
	s.mu.Lock()
	list := make([]worksession.WorkSession, 0, len(s.sessions))
	for _, sess := range s.sessions {
		list = append(list, *sess)
	}
	s.mu.Unlock()
	c.JSON(http.StatusOK, list)
}

func (s *server) myStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.statsFor(employee(c)))
}

func (s *server) allStats(c *gin.Context) {
	s.mu.Lock()
	names := map[string]struct{}{}
	for _, sess := range s.sessions {
		names[sess.Employee] = struct{}{}
	}
	s.mu.Unlock()

	out := make([]worksession.EmployeeWorkStats, 0, len(names))
	for n := range names {
		out = append(out, s.statsFor(n))
	}
	c.JSON(http.StatusOK, out)
}

func (s *server) statsFor(emp string) worksession.EmployeeWorkStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	st := worksession.EmployeeWorkStats{EmployeeName: emp}
	for _, sess := range s.sessions {
		if sess.Employee != emp {
			continue
		}
		work := worksession.ParseClockHours(sess.TotalWorkTime)
		pause := worksession.ParseClockHours(sess.TotalPauseTime)
		y1, m1, d1 := sess.StartTime.Date()
		y2, m2, d2 := now.Date()
		if y1 == y2 && m1 == m2 && d1 == d2 {
			st.TotalHoursToday += work
			st.PauseHoursToday += pause
		}
		if now.Sub(sess.StartTime) <= 7*24*time.Hour {
			st.TotalHoursWeek += work
			st.PauseHoursWeek += pause
		}
		if now.Sub(sess.StartTime) <= 30*24*time.Hour {
			st.TotalHoursMonth += work
			st.PauseHoursMonth += pause
		}
		if sess.Open() {
			st.CurrentStatus = string(sess.Status)
			start := sess.StartTime
			st.CurrentSessionStart = &start
		}
	}
	return st
}

func (s *server) streamEvents(c *gin.Context) {
	if c.Query("token") == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "token required"})
		return
	}
	ch := make(chan realtime.Frame, 16)
	s.subMu.Lock()
	s.subs[ch] = struct{}{}
	s.subMu.Unlock()
	defer func() {
		s.subMu.Lock()
		delete(s.subs, ch)
		s.subMu.Unlock()
	}()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Stream(func(w io.Writer) bool {
		select {
		case f := <-ch:
			c.SSEvent("message", f)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

func (s *server) acceptNotification(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid payload"})
		return
	}
	slog.Info("notification received", "type", body["type"], "user_id", body["user_id"])
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *server) broadcast(kind events.Kind, sess *worksession.WorkSession) {
	update := events.WorkSessionUpdate{
		Kind:          kind,
		SessionID:     sess.ID,
		EmployeeEmail: sess.Employee,
		Session:       sess,
		Timestamp:     time.Now().UnixMilli(),
	}
	data, err := json.Marshal(update)
	if err != nil {
		slog.Error("broadcast encode failed", "error", err)
		return
	}
	frame := realtime.Frame{Type: events.FrameWorkSessionUpdate, Data: data}

	s.subMu.Lock()
	defer s.subMu.Unlock()
	for ch := range s.subs {
		select {
		case ch <- frame:
		default:
			// Drop for slow subscribers rather than blocking the mutation.
		}
	}
}
