package std

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []Message
	err  error
}

func (f *fakeSender) Send(ctx context.Context, msg Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func TestEmailTool_Execute(t *testing.T) {
	sender := &fakeSender{}
	tool := NewEmailTool(sender)

	got, err := tool.Execute(context.Background(), map[string]interface{}{
		"to":      []interface{}{"a@example.com", "b@example.com"},
		"subject": "Hello",
		"body":    "Hi there",
	})
	require.NoError(t, err)
	assert.Equal(t, "Email sent to a@example.com, b@example.com", got)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, sender.sent[0].To)
	assert.Equal(t, "Hello", sender.sent[0].Subject)
	assert.Equal(t, "Hi there", sender.sent[0].Body)
}

func TestEmailTool_Execute_SenderFailure(t *testing.T) {
	tool := NewEmailTool(&fakeSender{err: errors.New("smtp connection refused")})

	_, err := tool.Execute(context.Background(), map[string]interface{}{
		"to":      []interface{}{"a@example.com"},
		"subject": "Hello",
		"body":    "Hi",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp connection refused")
}

func TestEmailTool_Execute_Errors(t *testing.T) {
	tool := NewEmailTool(&fakeSender{})

	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{
			name: "missing recipients",
			args: map[string]interface{}{"subject": "s", "body": "b"},
		},
		{
			name: "empty recipients",
			args: map[string]interface{}{"to": []interface{}{}, "subject": "s", "body": "b"},
		},
		{
			name: "missing subject",
			args: map[string]interface{}{"to": []interface{}{"a@example.com"}, "body": "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tool.Execute(context.Background(), tt.args)
			assert.Error(t, err)
		})
	}
}
