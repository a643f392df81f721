package human

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"
)

// ChatMessage is one channel message observed while polling for a reply.
type ChatMessage struct {
	Text   string
	Author string
	// Timestamp is the channel-native ordering token (Slack "ts").
	Timestamp string
}

// ChatClient is the minimal chat-channel surface the remote responder
// needs. The channel offers no per-question addressing; replies are
// correlated by posting time only.
type ChatClient interface {
	// PostMessage posts text to a channel and returns the message timestamp.
	PostMessage(ctx context.Context, channel, text string) (string, error)

	// MessagesSince returns channel messages strictly newer than the given
	// timestamp, oldest first.
	MessagesSince(ctx context.Context, channel, timestamp string) ([]ChatMessage, error)
}

// slackChat backs ChatClient with the Slack Web API.
type slackChat struct {
	api *slack.Client
}

// NewSlackChat builds a ChatClient for a bot token.
func NewSlackChat(token string) ChatClient {
	return &slackChat{api: slack.New(token)}
}

func (s *slackChat) PostMessage(ctx context.Context, channel, text string) (string, error) {
	_, ts, err := s.api.PostMessageContext(ctx, channel, slack.MsgOptionText(text, false))
	if err != nil {
		return "", fmt.Errorf("slack: post message: %w", err)
	}
	return ts, nil
}

func (s *slackChat) MessagesSince(ctx context.Context, channel, timestamp string) ([]ChatMessage, error) {
	history, err := s.api.GetConversationHistoryContext(ctx, &slack.GetConversationHistoryParameters{
		ChannelID: channel,
		Oldest:    timestamp,
		Inclusive: false,
		Limit:     20,
	})
	if err != nil {
		return nil, fmt.Errorf("slack: conversation history: %w", err)
	}

	// Slack returns newest first; the poll loop wants oldest first so the
	// earliest qualifying reply wins.
	messages := make([]ChatMessage, 0, len(history.Messages))
	for i := len(history.Messages) - 1; i >= 0; i-- {
		m := history.Messages[i]
		if m.Timestamp == timestamp {
			continue
		}
		messages = append(messages, ChatMessage{
			Text:      m.Text,
			Author:    m.User,
			Timestamp: m.Timestamp,
		})
	}
	return messages, nil
}
