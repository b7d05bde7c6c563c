package http

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/gharkeseva/gharseva-api/internal/realtime"
	"github.com/gharkeseva/gharseva-api/pkg/logger"
)

// wsConn adapts one websocket connection to the bus Subscriber contract.
// Writes are serialized; gorilla-style connections allow one concurrent
// writer only.
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (w *wsConn) Send(ev realtime.Event) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.WriteJSON(ev) == nil
}

// inboundFrame is one client frame: a kind plus an opaque payload that is
// only parsed as far as routing requires.
type inboundFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// WSHandler owns the websocket endpoint: channel membership, vendor
// presence, and frame relaying.
type WSHandler struct {
	bus *realtime.Bus
	log *logger.Logger
}

// NewWSHandler builds the websocket handler.
func NewWSHandler(bus *realtime.Bus, log *logger.Logger) *WSHandler {
	return &WSHandler{bus: bus, log: log}
}

// Upgrade gates the endpoint to websocket requests.
func (h *WSHandler) Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Serve runs one connection's read loop until the peer closes. A connection
// that identified as a vendor is marked offline when it drops.
func (h *WSHandler) Serve(conn *websocket.Conn) {
	sub := &wsConn{conn: conn}
	joined := make(map[string]struct{})
	vendorID := ""

	defer func() {
		for identity := range joined {
			h.bus.Leave(identity, sub)
		}
		h.bus.Disconnected(vendorID)
		conn.Close()
	}()

	join := func(identity string) {
		if identity == "" {
			return
		}
		if _, ok := joined[identity]; ok {
			return
		}
		h.bus.Join(identity, sub)
		joined[identity] = struct{}{}
	}

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var frame inboundFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			h.log.Debug().Err(err).Msg("unparseable socket frame dropped")
			continue
		}

		switch frame.Event {
		case realtime.FrameJoinRoom:
			var data struct {
				UserID string `json:"userId"`
			}
			if err := json.Unmarshal(frame.Data, &data); err != nil || data.UserID == "" {
				continue
			}
			join(data.UserID)
			// Admin identities also join the shared admin channel so
			// dispatch alerts reach every admin device.
			if strings.HasPrefix(data.UserID, "ADM-") {
				join(realtime.AdminChannel)
			}

		case realtime.FrameJoinVendor:
			var data struct {
				VendorID string `json:"vendorId"`
			}
			if err := json.Unmarshal(frame.Data, &data); err != nil || data.VendorID == "" {
				continue
			}
			join(data.VendorID)
			vendorID = data.VendorID
			h.bus.MarkOnline(context.Background(), data.VendorID)

		case realtime.FrameSendMessage:
			var data map[string]interface{}
			if err := json.Unmarshal(frame.Data, &data); err != nil {
				continue
			}
			target, _ := data["targetId"].(string)
			if target == "" {
				continue
			}
			data["timestamp"] = time.Now().UTC().Format(time.RFC3339)
			h.bus.Relay(realtime.EventReceiveMessage, target, data)

		case realtime.FrameStatusChangeAlert:
			var data struct {
				CustomerUserID string `json:"customerUserId"`
			}
			if err := json.Unmarshal(frame.Data, &data); err != nil || data.CustomerUserID == "" {
				continue
			}
			h.bus.Relay(realtime.EventOrderStatusUpdated, data.CustomerUserID, frame.Data)

		default:
			h.log.Debug().Str("event", frame.Event).Msg("unknown socket frame dropped")
		}
	}
}
