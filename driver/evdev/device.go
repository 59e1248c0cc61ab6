// SPDX-License-Identifier: Unlicense OR MIT

//go:build linux
// +build linux

package evdev

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"gioui.org/gesturekit/app"
)

// eviocgrab is EVIOCGRAB, _IOW('E', 0x90, int).
const eviocgrab = 0x40044590

// Device is an open input device node.
type Device struct {
	Decoder Decoder

	path string
	fd   int
}

// Open opens the device node at path. With grab set, the device's
// events are not delivered to other readers such as the display
// server.
func Open(path string, grab bool) (*Device, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "evdev: open %s", path)
	}
	if grab {
		if err := unix.IoctlSetInt(fd, eviocgrab, 1); err != nil {
			unix.Close(fd)
			return nil, errors.Wrapf(err, "evdev: grab %s", path)
		}
	}
	return &Device{path: path, fd: fd}, nil
}

// Run decodes records and queues their events to l until ctx is done
// or reading fails.
func (d *Device) Run(ctx context.Context, l *app.Loop) error {
	buf := make([]byte, RecordSize*64)
	fds := []unix.PollFd{{Fd: int32(d.fd), Events: unix.POLLIN}}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := unix.Poll(fds, 100)
		if err == unix.EINTR || n == 0 {
			continue
		}
		if err != nil {
			return errors.Wrapf(err, "evdev: poll %s", d.path)
		}
		n, err = unix.Read(d.fd, buf)
		if err == unix.EINTR || err == unix.EAGAIN {
			continue
		}
		if err != nil {
			return errors.Wrapf(err, "evdev: read %s", d.path)
		}
		for off := 0; off+RecordSize <= n; off += RecordSize {
			for _, e := range d.Decoder.Decode(ParseRecord(buf[off:off+RecordSize]), l.Now()) {
				if !l.Queue(e) {
					return ctx.Err()
				}
			}
		}
	}
}

// Close releases the device.
func (d *Device) Close() error {
	return errors.Wrap(unix.Close(d.fd), "evdev")
}
