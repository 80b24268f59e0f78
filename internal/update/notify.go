package update

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

type Notification struct {
	Title string
	Body  string
	Level string // "info" | "success" | "error"
	At    time.Time
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

func (m *Model) pushNotification(n Notification) {
	if n.At.IsZero() {
		n.At = m.now()
	}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > 40 {
		m.Notifications = m.Notifications[len(m.Notifications)-40:]
	}
}

func (m Model) toastInfo(text string) Model {
	m.Status = StatusBar{Text: text}
	m.pushNotification(Notification{Body: text, Level: "info"})
	return m
}

func (m Model) toastSuccess(text string) Model {
	m.Status = StatusBar{Text: text}
	m.pushNotification(Notification{Body: text, Level: "success"})
	return m
}

func (m Model) toastError(text string) Model {
	m.Status = StatusBar{Text: text, IsError: true}
	m.pushNotification(Notification{Body: text, Level: "error"})
	return m
}

// withDesktopNote fires a best-effort OS notification alongside the
// in-app one when the user opted in.
func (m Model) withDesktopNote(title, body string) Model {
	if m.deps.DesktopEnabled {
		go func() {
			_ = m.deps.Notifier.Send(Notification{Title: title, Body: body, Level: "success"})
		}()
	}
	return m
}
