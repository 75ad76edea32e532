// Package realtime fans messages out to websocket subscribers of a channel.
// Delivery is at-most-once: a subscriber whose buffer is full misses the
// message, and nothing is replayed on reconnect.
package realtime

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// TimeChannel carries the periodic server time.
const TimeChannel = "time"

const (
	chatPrefix  = "chat."
	panelPrefix = "painel."

	idAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	idLength   = 12
)

// ChatChannel returns the channel of a chat room.
func ChatChannel(room string) string {
	return chatPrefix + room
}

// PanelChannel returns the channel of a session panel.
func PanelChannel(pk int64) string {
	return panelPrefix + strconv.FormatInt(pk, 10)
}

// Subject maps channel to a NATS subject under prefix. Room names are
// encoded so dots and wildcards in them never split the subject.
func Subject(prefix, channel string) string {
	if room, ok := strings.CutPrefix(channel, chatPrefix); ok {
		return prefix + "." + chatPrefix + base64.RawURLEncoding.EncodeToString([]byte(room))
	}
	return prefix + "." + channel
}

// Frame is the envelope written to websocket clients.
type Frame struct {
	ID      string          `json:"id"`
	Channel string          `json:"channel"`
	SentAt  time.Time       `json:"sent_at"`
	Payload json.RawMessage `json:"payload"`
}

// NewFrame wraps payload for channel with a fresh id.
func NewFrame(channel string, payload any, now time.Time) (Frame, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Frame{}, fmt.Errorf("marshal payload: %w", err)
	}
	id, err := nanoid.Generate(idAlphabet, idLength)
	if err != nil {
		return Frame{}, fmt.Errorf("frame id: %w", err)
	}
	return Frame{
		ID:      "msg-" + id,
		Channel: channel,
		SentAt:  now.UTC(),
		Payload: data,
	}, nil
}

// ChatMessage is the payload of a chat frame.
type ChatMessage struct {
	Message string `json:"message"`
}

// TimePayload is the payload of a time-refresh frame.
type TimePayload struct {
	Time string `json:"time"`
	Unix int64  `json:"unix"`
}
