package server

import (
	"context"
	"fmt"
	"image"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/JackWithOneEye/metroview/cmd/web"
	"github.com/JackWithOneEye/metroview/internal/database"
	"github.com/JackWithOneEye/metroview/internal/engine"
	"github.com/JackWithOneEye/metroview/internal/livereload"
	"github.com/JackWithOneEye/metroview/internal/metromap"
	"github.com/a-h/templ"
	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"
)

type ServerConfig interface {
	engine.EngineConfig
	Port() uint
	Debug() bool
}

type server struct {
	cfg     ServerConfig
	db      database.DatabaseService
	content *metromap.Map
	globals web.Globals

	sessionsMtx sync.Mutex
	sessions    map[*session]struct{}
}

type session struct {
	engine engine.Engine
	cancel context.CancelFunc
}

type viewRequest struct {
	X *int `json:"x" binding:"required"`
	Y *int `json:"y" binding:"required"`
}

// NewServer serves the viewer page, the map and one pan session per
// websocket connection. Sessions end when their connection closes or the
// server shuts down.
func NewServer(cfg ServerConfig, db database.DatabaseService, content *metromap.Map) *http.Server {
	s := &server{
		cfg:     cfg,
		db:      db,
		content: content,
		globals: web.Globals{
			Name:   content.Name,
			Width:  content.Width,
			Height: content.Height,
			Tuning: cfg.Tuning(),
		},
		sessions: make(map[*session]struct{}),
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port()),
		Handler:           s.registerRoutes(),
		IdleTimeout:       time.Minute,
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv.RegisterOnShutdown(s.closeSessions)

	return srv
}

func (s *server) registerRoutes() http.Handler {
	if !s.cfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.Static("/assets", "./cmd/web/assets")

	index := func(c *gin.Context) {
		templ.Handler(web.Index("/pan", &s.globals)).ServeHTTP(c.Writer, c.Request)
	}
	if s.cfg.Debug() {
		r.GET("/_livereload", livereload.Handler)
		r.GET("/", livereload.InjectScript("/_livereload", index))
	} else {
		r.GET("/", index)
	}

	r.GET("/globals", func(c *gin.Context) {
		c.JSON(http.StatusOK, &s.globals)
	})

	r.GET("/map", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.content)
	})

	r.GET("/view", s.getViewHandler)
	r.POST("/view", s.postViewHandler)

	r.GET("/pan", s.panHandler)

	return r
}

func (s *server) getViewHandler(c *gin.Context) {
	p, ok, err := s.db.GetView(c.Request.Context(), s.content.Name)
	if err != nil {
		log.Printf("could not get view: %s", err)
		c.String(http.StatusInternalServerError, "could not get view")
		return
	}
	if !ok {
		p = image.Pt(s.content.Width/2, s.content.Height/2)
	}
	c.JSON(http.StatusOK, web.View{X: p.X, Y: p.Y, Saved: ok})
}

func (s *server) postViewHandler(c *gin.Context) {
	var req viewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "invalid view: %s", err)
		return
	}
	p := image.Pt(*req.X, *req.Y)
	if !p.In(image.Rect(0, 0, s.content.Width, s.content.Height)) {
		c.String(http.StatusBadRequest, "view centre %v is outside the map", p)
		return
	}
	if err := s.db.WriteView(c.Request.Context(), s.content.Name, p); err != nil {
		log.Printf("could not save view: %s", err)
		c.String(http.StatusInternalServerError, "could not save view")
		return
	}
	c.JSON(http.StatusOK, web.View{X: p.X, Y: p.Y, Saved: true})
}

func (s *server) addSession(ss *session) {
	s.sessionsMtx.Lock()
	defer s.sessionsMtx.Unlock()
	s.sessions[ss] = struct{}{}
}

func (s *server) removeSession(ss *session) {
	s.sessionsMtx.Lock()
	defer s.sessionsMtx.Unlock()
	delete(s.sessions, ss)
}

func (s *server) closeSessions() {
	s.sessionsMtx.Lock()
	defer s.sessionsMtx.Unlock()
	for ss := range s.sessions {
		ss.cancel()
	}
}

func (s *server) panHandler(c *gin.Context) {
	w := c.Writer
	r := c.Request
	socket, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Printf("could not open websocket: %s", err)
		_, _ = w.Write([]byte("could not open websocket"))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	defer socket.CloseNow()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	ss := &session{
		engine: engine.NewEngine(s.cfg, s.content, ctx),
		cancel: cancel,
	}
	s.addSession(ss)
	defer s.removeSession(ss)
	go ss.engine.Start()

	readerMsgChan := make(chan []byte)
	readerErrChan := make(chan error)
	reader := func() {
		_, data, err := socket.Read(ctx)
		if err != nil {
			select {
			case readerErrChan <- err:
			case <-ctx.Done():
			}
			return
		}
		select {
		case readerMsgChan <- data:
		case <-ctx.Done():
		}
	}

	go reader()

	for {
		select {
		case <-ctx.Done():
			socket.Close(websocket.StatusGoingAway, "session closed")
			return
		case payload, ok := <-ss.engine.Output():
			if !ok {
				return
			}
			err := socket.Write(ctx, websocket.MessageBinary, payload)
			if isClosed(err) {
				return
			}
			if err != nil {
				log.Printf("could not write to websocket: %s", err)
				return
			}
		case msg := <-readerMsgChan:
			err = ss.engine.SubmitMessage(msg)
			if err != nil {
				log.Printf("websocket message produced an error: %s", err)
			}
			go reader()
		case err := <-readerErrChan:
			if isClosed(err) {
				return
			}
			log.Printf("could not read from websocket: %s", err)
			return
		}
	}
}

func isClosed(err error) bool {
	status := websocket.CloseStatus(err)
	return status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway
}
