package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInboundEventUnmarshal(t *testing.T) {
	raw := `{
		"event": "message",
		"session": "default",
		"payload": {
			"id": "false_51987654321@c.us_ABCDEF",
			"timestamp": 1735600000,
			"from": "51987654321@c.us",
			"fromMe": false,
			"body": "hola",
			"hasMedia": false
		}
	}`

	var event InboundEvent
	require.NoError(t, json.Unmarshal([]byte(raw), &event))

	assert.Equal(t, EventMessage, event.Event)
	assert.Equal(t, "default", event.Session)
	require.NotNil(t, event.Payload)
	assert.Equal(t, "51987654321@c.us", event.Payload.From)
	assert.Equal(t, "hola", event.Payload.BodyText())
	assert.False(t, event.Payload.HasMedia)
	assert.Nil(t, event.Payload.Media)
}

func TestInboundEventUnmarshalMedia(t *testing.T) {
	raw := `{
		"event": "message",
		"session": "default",
		"payload": {
			"id": "msg-1",
			"from": "51987654321@c.us",
			"body": null,
			"hasMedia": true,
			"media": {
				"url": "http://localhost:3000/api/files/voice.oga",
				"mimetype": "audio/ogg; codecs=opus"
			}
		}
	}`

	var event InboundEvent
	require.NoError(t, json.Unmarshal([]byte(raw), &event))

	require.NotNil(t, event.Payload)
	assert.Nil(t, event.Payload.Body)
	assert.Equal(t, "", event.Payload.BodyText())
	assert.True(t, event.Payload.HasMedia)
	require.NotNil(t, event.Payload.Media)
	assert.Equal(t, VoiceNoteMimeType, event.Payload.Media.MimeType)
}

func TestInboundEventUnmarshalNoPayload(t *testing.T) {
	var event InboundEvent
	require.NoError(t, json.Unmarshal([]byte(`{"event":"session.status","session":"default"}`), &event))

	assert.Equal(t, EventSessionStatus, event.Event)
	assert.Nil(t, event.Payload)
}

func TestBodyTextNilReceiver(t *testing.T) {
	var p *MessagePayload
	assert.Equal(t, "", p.BodyText())
}

func TestSetBody(t *testing.T) {
	p := &MessagePayload{}
	p.SetBody("transcribed text")
	require.NotNil(t, p.Body)
	assert.Equal(t, "transcribed text", p.BodyText())
}

func TestPipelineResultMarshal(t *testing.T) {
	result := PipelineResult{
		Status:  "error",
		Message: "download failed",
	}

	data, err := json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"error","message":"download failed"}`, string(data))
}

func TestSendTextRequestMarshal(t *testing.T) {
	replyTo := "msg-1"
	req := SendTextRequest{
		ChatID:      "51987654321@c.us",
		ReplyTo:     &replyTo,
		Text:        "hola",
		LinkPreview: true,
		Session:     "default",
	}

	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"chatId": "51987654321@c.us",
		"reply_to": "msg-1",
		"text": "hola",
		"linkPreview": true,
		"linkPreviewHighQuality": false,
		"session": "default"
	}`, string(data))
}
