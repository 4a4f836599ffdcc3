// Package livereload reloads open viewer pages when the server restarts.
package livereload

import (
	"bytes"
	"errors"
	"log"
	"net/http"

	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	retryInterval = 500
	maxRetries    = 10
)

type injectorWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *injectorWriter) Write(b []byte) (int, error) {
	return w.body.Write(b)
}

func (w *injectorWriter) WriteString(s string) (int, error) {
	return w.body.WriteString(s)
}

// InjectScript buffers the HTML written by handlerFunc and adds a script to
// its <head> that reconnects to the websocket at path and reloads the page
// once the server is back.
func InjectScript(path string, handlerFunc gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		orig := c.Writer
		w := &injectorWriter{
			body:           &bytes.Buffer{},
			ResponseWriter: orig,
		}
		c.Writer = w
		handlerFunc(c)
		c.Next()
		c.Writer = orig
		if w.Status() != http.StatusOK {
			_, _ = orig.Write(w.body.Bytes())
			return
		}

		out, err := inject(w.body, path)
		if err != nil {
			log.Printf("could not inject livereload script: %s", err)
			_, _ = orig.Write(w.body.Bytes())
			return
		}
		_, _ = orig.Write(out)
	}
}

func inject(body *bytes.Buffer, path string) ([]byte, error) {
	script := &bytes.Buffer{}
	err := scriptTemplate.Execute(script, &scriptConfig{Path: path, RetryInterval: retryInterval, MaxRetries: maxRetries})
	if err != nil {
		return nil, err
	}

	doc, err := html.Parse(body)
	if err != nil {
		return nil, err
	}

	head := findHead(doc)
	if head == nil {
		return nil, errors.New("no <head> element node found")
	}
	head.AppendChild(&html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Script,
		Data:     atom.Script.String(),
		FirstChild: &html.Node{
			Type: html.TextNode,
			Data: script.String(),
		},
	})

	out := &bytes.Buffer{}
	if err := html.Render(out, doc); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func findHead(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Head {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if h := findHead(c); h != nil {
			return h
		}
	}
	return nil
}

// Handler holds a websocket open until the client goes away. Clients notice
// a restart by the connection dropping.
func Handler(c *gin.Context) {
	w := c.Writer
	r := c.Request
	socket, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Printf("could not open livereload websocket: %s", err)
		_, _ = w.Write([]byte("could not open livereload websocket"))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	defer socket.CloseNow()

	ctx := socket.CloseRead(r.Context())

	<-ctx.Done()
}
