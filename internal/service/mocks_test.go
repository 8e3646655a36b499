package service

import (
	"context"
	"fmt"

	"wahabridge/internal/models"
)

type mockGateway struct {
	sendErr   error
	sendCalls []models.SendTextRequest
	downloads []string
}

func (m *mockGateway) SendText(ctx context.Context, req models.SendTextRequest) (*models.SendTextResponse, error) {
	m.sendCalls = append(m.sendCalls, req)
	if m.sendErr != nil {
		return nil, m.sendErr
	}
	return &models.SendTextResponse{
		ID: &models.MessageRef{ID: fmt.Sprintf("sent-%d", len(m.sendCalls)), Serialized: "sent"},
	}, nil
}

func (m *mockGateway) DownloadMedia(ctx context.Context, url string) ([]byte, error) {
	m.downloads = append(m.downloads, url)
	return []byte("bytes"), nil
}

type mockTranscoder struct {
	text           string
	err            error
	panicOnCall    bool
	transcribeURLs []string
	extractURLs    []string
}

func (m *mockTranscoder) Transcribe(ctx context.Context, mediaURL, model string) (string, error) {
	if m.panicOnCall {
		panic("transcoder exploded")
	}
	m.transcribeURLs = append(m.transcribeURLs, mediaURL)
	return m.text, m.err
}

func (m *mockTranscoder) ExtractDocument(ctx context.Context, mediaURL, model string) (string, error) {
	if m.panicOnCall {
		panic("transcoder exploded")
	}
	m.extractURLs = append(m.extractURLs, mediaURL)
	return m.text, m.err
}

type mockChatbot struct {
	resp    *models.ChatbotResponse
	err     error
	gotReqs []models.ChatbotRequest
}

func (m *mockChatbot) Ask(ctx context.Context, req models.ChatbotRequest) (*models.ChatbotResponse, error) {
	m.gotReqs = append(m.gotReqs, req)
	return m.resp, m.err
}
