// Package platform delivers desktop notifications through the native
// notification service of the host.
package platform

import "time"

// AppName identifies the application to notification centers.
const AppName = "ClipPaint"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// IconPath points to an image shown next to the message where supported.
	IconPath string
	// Expire is how long the message stays visible; zero uses the server default.
	Expire time.Duration
}

func (o Options) expireMillis() int32 {
	if o.Expire <= 0 {
		return -1
	}
	return int32(o.Expire / time.Millisecond)
}
