package assist

import (
	"time"

	"github.com/google/uuid"
)

// Sender identifies who authored a chat message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// Greeting is the assistant's opening message in a new chat session.
const Greeting = "Hi there! I'm your AI assistant. Ask me anything about your tasks, like 'What tasks are due today?' or 'How many high priority tasks do I have?'"

// ChatMessage is one entry in a chat transcript.
type ChatMessage struct {
	ID        string
	Content   string
	Sender    Sender
	Timestamp time.Time
}

// Transcript is the append-only message sequence for a single chat
// session. It lives in memory only and is never persisted.
type Transcript struct {
	messages []ChatMessage
	now      func() time.Time
}

// NewTranscript creates a transcript opened with the greeting message.
func NewTranscript() *Transcript {
	t := &Transcript{now: time.Now}
	t.Append(SenderAI, Greeting)
	return t
}

// Append adds a message to the transcript and returns it.
func (t *Transcript) Append(sender Sender, content string) ChatMessage {
	msg := ChatMessage{
		ID:        uuid.NewString(),
		Content:   content,
		Sender:    sender,
		Timestamp: t.now(),
	}
	t.messages = append(t.messages, msg)
	return msg
}

// Messages returns a copy of the transcript in append order.
func (t *Transcript) Messages() []ChatMessage {
	out := make([]ChatMessage, len(t.messages))
	copy(out, t.messages)
	return out
}

// Len returns the number of messages in the transcript.
func (t *Transcript) Len() int {
	return len(t.messages)
}
