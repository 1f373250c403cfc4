package infrastructure

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/yourusername/pin-extract-go/internal/domain"
)

type recordedCommand struct {
	name string
	args []string
}

func newTestNotifier(config *domain.NotificationConfig, err error) (*NotificationService, *[]recordedCommand) {
	var calls []recordedCommand
	n := NewNotificationService(config, zap.NewNop())
	n.run = func(name string, args ...string) error {
		calls = append(calls, recordedCommand{name: name, args: args})
		return err
	}
	return n, &calls
}

func TestNotificationService_Disabled(t *testing.T) {
	n, calls := newTestNotifier(&domain.NotificationConfig{Enabled: false, Method: "notify-send"}, nil)

	assert.NoError(t, n.Send("title", "message"))
	assert.Empty(t, *calls)
}

func TestNotificationService_Methods(t *testing.T) {
	n, calls := newTestNotifier(&domain.NotificationConfig{Enabled: true, Method: "notify-send"}, nil)
	assert.NoError(t, n.Send("Pinterest Video", "Saved a.mp4"))
	assert.Equal(t, []recordedCommand{{name: "notify-send", args: []string{"Pinterest Video", "Saved a.mp4"}}}, *calls)

	n, calls = newTestNotifier(&domain.NotificationConfig{Enabled: true, Method: "osascript"}, nil)
	assert.NoError(t, n.Send("T", `say "hi"`))
	assert.Len(t, *calls, 1)
	assert.Equal(t, "osascript", (*calls)[0].name)
	assert.Equal(t, `display notification "say \"hi\"" with title "T"`, (*calls)[0].args[1])

	n, calls = newTestNotifier(&domain.NotificationConfig{Enabled: true, Method: "carrier-pigeon"}, nil)
	assert.NoError(t, n.Send("T", "M"))
	assert.Empty(t, *calls)
}

func TestNotificationService_CommandFailure(t *testing.T) {
	n, _ := newTestNotifier(&domain.NotificationConfig{Enabled: true, Method: "notify-send"}, errors.New("not installed"))
	assert.EqualError(t, n.Send("T", "M"), "not installed")
}

func TestNotificationService_NotifyResult(t *testing.T) {
	n, calls := newTestNotifier(&domain.NotificationConfig{Enabled: true, Method: "notify-send"}, nil)

	n.NotifyResult("https://www.pinterest.com/pin/1/", &domain.DownloadResult{
		Success: true, Title: "Pinterest Image", Filename: "pinterest_image_1_abcdef.jpg",
	})
	n.NotifyResult("https://www.pinterest.com/pin/2/", domain.NewFailureResult(domain.ErrNoMedia))

	assert.Len(t, *calls, 2)
	assert.Equal(t, []string{"Pinterest Image", "Saved pinterest_image_1_abcdef.jpg"}, (*calls)[0].args)
	assert.Equal(t, "Pin Download Failed", (*calls)[1].args[0])
	assert.Contains(t, (*calls)[1].args[1], domain.MessageNoMedia)
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "abc...", truncateString("abcdef", 3))
}
