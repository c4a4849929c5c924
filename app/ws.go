// Copyright 2026 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package app

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/squashbench/benchview/benchview"
	"github.com/squashbench/benchview/panel"
	"github.com/squashbench/benchview/selection"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// A message is the JSON form of every websocket message.
//
// Client to server:
//
//	render        {dataset, width}
//	select        {generation, index, selection}
//
// Server to client:
//
//	draw          {generation, index, view, kind, dataTable, options}
//	rendered      {generation, dataset, errors}
//	setSelection  {generation, index, selection}
//	error         {request, error}
//
// The request of an error message is the type of the client message
// that failed. Only a failed render leaves the panel empty.
//
// A client clears its panel when it sees a generation it has not seen
// before, and ignores messages of older generations.
type message struct {
	Type       string              `json:"type"`
	Dataset    string              `json:"dataset,omitempty"`
	Width      int                 `json:"width,omitempty"`
	Generation int                 `json:"generation,omitempty"`
	Index      int                 `json:"index"`
	Selection  selection.Selection `json:"selection,omitempty"`

	View      string               `json:"view,omitempty"`
	Kind      benchview.Kind       `json:"kind,omitempty"`
	DataTable *benchview.DataTable `json:"dataTable,omitempty"`
	Options   *benchview.Options   `json:"options,omitempty"`

	Errors  []renderFailure `json:"errors,omitempty"`
	Request string          `json:"request,omitempty"`
	Error   string          `json:"error,omitempty"`
}

type renderFailure struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

// wsConn serializes writes to a websocket connection.
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsConn) send(m *message) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// newVis is the panel.Factory of the connection.
func (c *wsConn) newVis(generation, index int, v *benchview.View) (panel.Visualization, error) {
	return &remoteVis{conn: c, generation: generation, index: index}, nil
}

// A remoteVis is a visualization drawn by the browser at the other end
// of a websocket.
type remoteVis struct {
	conn       *wsConn
	generation int
	index      int
}

func (v *remoteVis) Draw(view *benchview.View, opts benchview.Options) error {
	return v.conn.send(&message{
		Type:       "draw",
		Generation: v.generation,
		Index:      v.index,
		View:       view.ID,
		Kind:       view.Kind,
		DataTable:  view.DataTable(),
		Options:    &opts,
	})
}

func (v *remoteVis) SetSelection(sel selection.Selection) error {
	return v.conn.send(&message{
		Type:       "setSelection",
		Generation: v.generation,
		Index:      v.index,
		Selection:  sel,
	})
}

// ws serves the websocket of one page. The connection's messages are
// handled one at a time by this goroutine, which owns the panel.
func (a *App) ws(w http.ResponseWriter, r *http.Request) {
	ctx := requestContext(r)
	res, err := a.results(ctx)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has replied to the client.
		a.errorf(ctx, "websocket upgrade: %v", err)
		return
	}
	defer conn.Close()
	a.Metrics.connected(1)
	defer a.Metrics.connected(-1)

	c := &wsConn{conn: conn}
	p := panel.New(res, c.newVis)
	defer p.Clear()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				a.errorf(ctx, "websocket read: %v", err)
			}
			return
		}
		var m message
		if err := json.Unmarshal(data, &m); err != nil {
			c.send(&message{Type: "error", Error: "invalid message: " + err.Error()})
			continue
		}
		if err := a.handleMessage(c, p, &m); err != nil {
			a.errorf(ctx, "websocket %s: %v", m.Type, err)
			if c.send(&message{Type: "error", Request: m.Type, Error: err.Error()}) != nil {
				return
			}
		}
	}
}

func (a *App) handleMessage(c *wsConn, p *panel.Panel, m *message) error {
	switch m.Type {
	case "render":
		width := m.Width
		if width <= 0 || width > maxWidth {
			width = a.width()
		}
		handles, err := p.RenderDataset(m.Dataset, width)
		if err != nil {
			return err
		}
		done := &message{Type: "rendered", Generation: p.Generation(), Dataset: m.Dataset}
		for _, h := range handles {
			a.Metrics.render(h.Err == nil)
			if h.Err != nil {
				done.Errors = append(done.Errors, renderFailure{h.Index, h.Err.Error()})
			}
		}
		return c.send(done)

	case "select":
		n, err := p.Select(m.Generation, m.Index, m.Selection)
		a.Metrics.broadcast(n)
		return err
	}
	return &unknownMessageError{m.Type}
}

type unknownMessageError struct {
	typ string
}

func (e *unknownMessageError) Error() string {
	return "unknown message type " + e.typ
}
