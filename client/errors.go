package client

import (
	"context"
	"net/http"
	"time"

	"github.com/tobibamidele/spotter/errors"
	"github.com/tobibamidele/spotter/events"
)

// classify converts an HTTP failure status into an error value. It never
// panics; every path terminates in a returned error.
//
// A 401 always yields the fixed re-authentication error, independent of
// the message parameter, and detaches a best-effort session-expired
// notification so surfacing the error is never blocked by the subscriber.
// The notification carries no ordering guarantee relative to the caller
// receiving its error. All other codes yield an HTTPError carrying the
// code and, when given, the caller-supplied context message.
func (c *Client) classify(status int, message string) error {
	if status == http.StatusUnauthorized {
		go c.notifySessionExpired()
		return errors.ErrSessionExpired
	}
	return &errors.HTTPError{StatusCode: status, Message: message}
}

// notifySessionExpired resolves the active account, drops the dead
// session and publishes the expiry event. Runs detached from the request
// that observed the 401.
func (c *Client) notifySessionExpired() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	accountID := c.sessions.ActiveAccountID()
	if err := c.sessions.Clear(ctx); err != nil {
		c.logger.Error().Err(err).Msg("failed to clear session after 401")
	}
	if accountID != "" {
		c.bus.Publish(events.SessionExpired{AccountID: accountID})
	}
}
