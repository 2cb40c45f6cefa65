// Package notify pops up desktop notifications through the freedesktop
// notification service.
package notify

import (
	"fmt"

	"github.com/godbus/dbus/v5"

	"github.com/1broseidon/winshift/internal/logging"
)

const (
	busName    = "org.freedesktop.Notifications"
	objectPath = "/org/freedesktop/Notifications"
	method     = busName + ".Notify"

	appName       = "winshift"
	defaultIcon   = "preferences-desktop-display"
	expireTimeout = int32(4000)
)

// Notifier shows a short message to the user.
type Notifier interface {
	Notify(summary, body string) error
}

// Silent drops every notification.
type Silent struct{}

func (Silent) Notify(summary, body string) error { return nil }

// caller is the part of dbus.BusObject used here.
type caller interface {
	Call(method string, flags dbus.Flags, args ...interface{}) *dbus.Call
}

// Desktop sends notifications over the session bus.
type Desktop struct {
	conn *dbus.Conn
	obj  caller
}

// NewDesktop connects to the session bus.
func NewDesktop() (*Desktop, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return &Desktop{
		conn: conn,
		obj:  conn.Object(busName, dbus.ObjectPath(objectPath)),
	}, nil
}

// Notify sends one notification and returns once the server accepted it.
func (d *Desktop) Notify(summary, body string) error {
	call := d.obj.Call(method, 0,
		appName,
		uint32(0), // replaces_id
		defaultIcon,
		summary,
		body,
		[]string{},
		map[string]dbus.Variant{},
		expireTimeout,
	)
	if call.Err != nil {
		return fmt.Errorf("notify: %w", call.Err)
	}
	var id uint32
	if err := call.Store(&id); err == nil {
		logging.Debug().Uint32("id", id).Str("summary", summary).Msg("notification sent")
	}
	return nil
}

func (d *Desktop) Close() error {
	if d.conn == nil {
		return nil
	}
	return d.conn.Close()
}

// New returns a desktop notifier when enabled and reachable, and Silent
// otherwise.
func New(enabled bool) Notifier {
	if !enabled {
		return Silent{}
	}
	d, err := NewDesktop()
	if err != nil {
		logging.Debug().Err(err).Msg("desktop notifications unavailable")
		return Silent{}
	}
	return d
}
