package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Raisondetr3/tasklist-service/internal/config"
	"github.com/Raisondetr3/tasklist-service/pkg/logger"
	"github.com/slack-go/slack"
)

type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// SlackNotifier posts chat.postMessage to a fixed channel.
type SlackNotifier struct {
	client  *slack.Client
	channel string
}

func NewSlackNotifier(cfg config.NotifyConfig) *SlackNotifier {
	var opts []slack.Option
	if cfg.SlackAPIURL != "" {
		opts = append(opts, slack.OptionAPIURL(cfg.SlackAPIURL))
	}

	return &SlackNotifier{
		client:  slack.New(cfg.SlackToken, opts...),
		channel: cfg.SlackChannel,
	}
}

func (n *SlackNotifier) Notify(ctx context.Context, message string) error {
	start := time.Now()

	_, _, err := n.client.PostMessageContext(ctx, n.channel,
		slack.MsgOptionText(message, false),
	)

	logger.LogNotification(ctx, n.channel, time.Since(start), err)

	if err != nil {
		return fmt.Errorf("post message to %s: %w", n.channel, err)
	}
	return nil
}

// NopNotifier используется, когда токен Slack не задан.
type NopNotifier struct{}

func (NopNotifier) Notify(ctx context.Context, message string) error {
	slog.InfoContext(ctx, "Notification skipped, no Slack token configured",
		slog.String("type", "notification"),
		slog.String("message", message),
	)
	return nil
}

// New picks the Slack notifier when a token is configured.
func New(cfg config.NotifyConfig) Notifier {
	if cfg.SlackToken == "" {
		return NopNotifier{}
	}
	return NewSlackNotifier(cfg)
}

// Dispatcher sends notifications in the background so the caller never
// waits on the chat service. Failures are logged and dropped.
type Dispatcher struct {
	notifier Notifier
	timeout  time.Duration
	wg       sync.WaitGroup
}

func NewDispatcher(notifier Notifier, timeout time.Duration) *Dispatcher {
	return &Dispatcher{
		notifier: notifier,
		timeout:  timeout,
	}
}

// Dispatch keeps request-scoped values from ctx but not its cancellation:
// the request usually finishes before the message is posted.
func (d *Dispatcher) Dispatch(ctx context.Context, message string) {
	d.wg.Add(1)

	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				slog.Error("Notification panic recovered", slog.Any("panic", r))
			}
		}()

		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
		defer cancel()

		if err := d.notifier.Notify(sendCtx, message); err != nil {
			logger.LogError(sendCtx, err, "notify")
		}
	}()
}

// Wait blocks until every dispatched notification has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
