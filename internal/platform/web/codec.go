// Package web serves the game over WebSocket. Each connection owns one
// game, stepped by its own tick goroutine; snapshots go out once per tick.
package web

import (
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

// Codec encodes outbound frames and decodes client messages.
type Codec interface {
	Name() string
	// MessageType is the websocket frame type used for outbound frames.
	MessageType() int
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }
func (jsonCodec) MessageType() int { return websocket.TextMessage }
func (jsonCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }
func (jsonCodec) Unmarshal(b []byte, v any) error { return json.Unmarshal(b, v) }

type msgpackCodec struct{}

func (msgpackCodec) Name() string { return "msgpack" }
func (msgpackCodec) MessageType() int { return websocket.BinaryMessage }
func (msgpackCodec) Marshal(v any) ([]byte, error) { return msgpack.Marshal(v) }
func (msgpackCodec) Unmarshal(b []byte, v any) error { return msgpack.Unmarshal(b, v) }

// CodecByName returns the codec for "json" (also the default for "") or "msgpack".
func CodecByName(name string) (Codec, error) {
	switch name {
	case "", "json":
		return jsonCodec{}, nil
	case "msgpack":
		return msgpackCodec{}, nil
	}
	return nil, fmt.Errorf("web: unknown codec %q", name)
}

// decodeClient decodes a client message. Text frames are always JSON;
// binary frames are decoded with msgpack.
func decodeClient(messageType int, data []byte, msg *clientMessage) error {
	if messageType == websocket.BinaryMessage {
		return msgpack.Unmarshal(data, msg)
	}
	return json.Unmarshal(data, msg)
}
