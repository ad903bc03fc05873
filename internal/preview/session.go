package preview

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/miniframe"
	"github.com/vango-dev/miniframe/internal/errors"
	"github.com/vango-dev/miniframe/internal/todo"
	"github.com/vango-dev/miniframe/pkg/dom"
	"github.com/vango-dev/miniframe/pkg/dom/memdom"
	"github.com/vango-dev/miniframe/pkg/render"
)

const (
	maxMessageSize = 64 * 1024
	writeTimeout   = 10 * time.Second
)

// session is one browser connection and the App it drives. All App access
// and all writes happen on the goroutine running serve.
type session struct {
	id     uint64
	conn   *websocket.Conn
	doc    *memdom.Document
	app    *miniframe.App
	rootID string
	logger *slog.Logger
}

func (s *Server) newSession(id uint64, conn *websocket.Conn) (*session, error) {
	sess := &session{
		id:     id,
		conn:   conn,
		doc:    memdom.New(s.rootID),
		rootID: s.rootID,
		logger: s.logger.With("session", id),
	}
	app, err := todo.New(miniframe.Options{
		Document:     sess.doc,
		RootID:       s.rootID,
		DefaultRoute: s.cfg.Router.DefaultRoute,
		Logger:       sess.logger,
		Telemetry:    s.tel,
		OnRender:     sess.rendered,
	})
	if err != nil {
		return nil, err
	}
	sess.app = app
	return sess, nil
}

// start renders the initial tree for the given fragment.
func (sess *session) start(hash string) {
	if hash != "" {
		sess.doc.SetHash(hash)
	}
	if err := sess.app.Start(todo.View); err != nil {
		sess.logger.Error("session start failed", "error", err)
	}
}

// serve reads client messages until the connection fails or closes.
func (sess *session) serve() {
	sess.conn.SetReadLimit(maxMessageSize)
	for {
		_, data, err := sess.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				sess.logger.Warn("session read failed", "error", err)
			}
			return
		}
		if err := sess.handle(data); err != nil {
			sess.sendError(err)
		}
	}
}

func (sess *session) handle(data []byte) error {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return errors.New(errors.CodeBadMessage).Wrap(err)
	}

	switch msg.Type {
	case MessageEvent:
		if msg.Event == "" {
			return errors.New(errors.CodeBadMessage).WithDetail("event message without event type")
		}
		el, err := sess.doc.ElementAt(sess.rootID, msg.Path)
		if err != nil {
			return errors.New(errors.CodeTargetNotFound).Wrap(err)
		}
		ev := dom.Event{Key: msg.Key}
		if msg.Value != nil {
			sess.doc.SetValue(el, *msg.Value)
			ev.Value = *msg.Value
		}
		sess.logger.Debug("event", "type", msg.Event, "path", msg.Path)
		sess.doc.Dispatch(el, msg.Event, ev)

	case MessageHash:
		sess.doc.SetHash(msg.Hash)

	default:
		return errors.New(errors.CodeBadMessage).WithDetail(fmt.Sprintf("unknown message type %q", msg.Type))
	}
	return nil
}

// rendered is the App's render observer.
func (sess *session) rendered(info render.Info) {
	if info.Err != nil {
		sess.sendError(info.Err)
		return
	}
	sess.send(ServerMessage{
		Type:     MessageHTML,
		HTML:     memdom.InnerHTML(sess.doc.GetElementByID(sess.rootID)),
		Hash:     sess.doc.Hash(),
		Revision: sess.app.Store().Revision(),
	})
}

func (sess *session) sendError(err error) {
	e := errors.FromError(err, "")
	sess.send(ServerMessage{
		Type:  MessageError,
		Hash:  sess.doc.Hash(),
		Code:  e.Code,
		Error: e.Error(),
	})
}

func (sess *session) send(msg ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		sess.logger.Error("encode message failed", "error", err)
		return
	}
	sess.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := sess.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		sess.logger.Warn("session write failed", "error", err)
	}
}
