package service

import (
	"context"
	"encoding/json"
	"errors"
	"interview_prep_backend/internal/interview"
	"interview_prep_backend/pkg/logger"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8 << 10
	sendBuffer     = 64
)

// 客户端指令类型
const (
	CommandStart  = "start"
	CommandAnswer = "answer"
	CommandReset  = "reset"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// InterviewCommand 客户端发来的一帧
type InterviewCommand struct {
	Type      string `json:"type"`
	Track     string `json:"track,omitempty"`
	Text      string `json:"text,omitempty"`
	KeepTrack bool   `json:"keepTrack,omitempty"`
}

type interviewClient struct {
	id      string
	conn    *websocket.Conn
	send    chan []byte
	session *interview.Session
	limiter *rate.Limiter
}

// emit 不阻塞；发送队列已满时丢弃该帧
func (c *interviewClient) emit(f interview.Frame) {
	data, err := json.Marshal(f)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
		logger.Log.Warn("Interview frame dropped", zap.String("sessionID", c.id), zap.String("type", f.Type))
	}
}

func (c *interviewClient) fail(err error) {
	c.emit(interview.Frame{Type: interview.FrameError, Error: err.Error()})
}

func (c *interviewClient) handle(cmd InterviewCommand) error {
	switch cmd.Type {
	case CommandStart:
		return c.session.Start(cmd.Track)
	case CommandAnswer:
		return c.session.Answer(cmd.Text)
	case CommandReset:
		c.session.Reset(cmd.KeepTrack)
		return nil
	}
	return errors.New("unknown command: " + cmd.Type)
}

func (c *interviewClient) readPump() {
	defer func() {
		c.session.Close()
		close(c.send)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.Error("WebSocket unexpected close", zap.Error(err), zap.String("sessionID", c.id))
			}
			break
		}
		if !c.limiter.Allow() {
			c.fail(errors.New("too many messages"))
			continue
		}

		var cmd InterviewCommand
		if err := json.Unmarshal(message, &cmd); err != nil {
			c.fail(errors.New("invalid message format"))
			continue
		}
		if err := c.handle(cmd); err != nil {
			c.fail(err)
		}
	}
}

func (c *interviewClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ServeInterviewWS 升级连接并为其创建一个实时面试会话
func ServeInterviewWS(svc *InterviewService, w http.ResponseWriter, r *http.Request, userID uint) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Error("WebSocket upgrade failed", zap.Error(err), zap.Uint("userId", userID))
		return
	}

	client := &interviewClient{
		id:      uuid.NewString(),
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
		limiter: rate.NewLimiter(rate.Limit(5), 10),
	}
	// 会话的生命周期跟随连接，而不是升级请求
	client.session = svc.NewSession(context.Background(), userID, client.emit)

	logger.Log.Info("Interview session opened", zap.String("sessionID", client.id), zap.Uint("userID", userID))
	go client.writePump()
	go client.readPump()
}
