package firebase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"firebase.google.com/go/v4/messaging"
)

func TestChunkTokens(t *testing.T) {
	tokens := make([]string, 1201)
	for i := range tokens {
		tokens[i] = fmt.Sprintf("token-%d", i)
	}

	chunks := chunkTokens(tokens, fcmBatchLimit)
	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3", len(chunks))
	}
	if len(chunks[0]) != 500 || len(chunks[1]) != 500 || len(chunks[2]) != 201 {
		t.Errorf("chunk sizes = %d, %d, %d", len(chunks[0]), len(chunks[1]), len(chunks[2]))
	}
	if chunks[2][200] != "token-1200" {
		t.Errorf("last token = %q", chunks[2][200])
	}

	if got := chunkTokens(nil, fcmBatchLimit); len(got) != 0 {
		t.Errorf("chunkTokens(nil) = %v, want empty", got)
	}
}

func TestSendMulticast_NoTokens(t *testing.T) {
	c := &Client{}
	if err := c.SendMulticast(context.Background(), nil, "title", "body", nil); err != nil {
		t.Errorf("SendMulticast() with no tokens error = %v", err)
	}
}

func TestHandleMulticastFailures_KeepsTokensOnOtherErrors(t *testing.T) {
	var deactivated []string
	c := &Client{deactivator: func(ctx context.Context, token string) error {
		deactivated = append(deactivated, token)
		return nil
	}}

	resp := &messaging.BatchResponse{
		SuccessCount: 1,
		FailureCount: 1,
		Responses: []*messaging.SendResponse{
			{Success: true, MessageID: "m1"},
			{Error: errors.New("quota exceeded")},
		},
	}
	c.handleMulticastFailures(context.Background(), []string{"a", "b"}, resp)

	if len(deactivated) != 0 {
		t.Errorf("deactivated = %v, want none", deactivated)
	}
}
