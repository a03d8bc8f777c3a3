// Package report implements the typed report runner: it turns a
// protocol.Command plus arguments into a full request/response exchange
// over a transport.Session, with retry-on-busy and typed error mapping.
package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/uchroma/uchromad/protocol"
	"github.com/uchroma/uchromad/transport"
)

// DefaultWait is the post-write sleep before the response is read, per
// spec.md §4.3.
const DefaultWait = 20 * time.Millisecond

// StandardWait is the longer 200ms HID settle time. Run never applies it on
// its own; a caller selects it through Options.Wait.
const StandardWait = 200 * time.Millisecond

const maxBusyRetries = 3

// BusyError is returned when the device stays busy past the retry budget.
type BusyError struct{ Retries int }

func (e *BusyError) Error() string {
	return fmt.Sprintf("report: device busy after %d retries", e.Retries)
}

// DeviceError is returned for FAIL/UNSUPPORTED responses.
type DeviceError struct {
	Status  protocol.Status
	Command protocol.Command
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("report: command %s (%#x,%#x) failed: %s", e.Command.Name, e.Command.Class, e.Command.ID, e.Status)
}

// OfflineError is returned when a wireless device times out; it is a soft
// failure the caller may retry once the device is reachable again.
type OfflineError struct{ Command protocol.Command }

func (e *OfflineError) Error() string {
	return fmt.Sprintf("report: device offline (command %s timed out)", e.Command.Name)
}

// Options configures a single Run call.
type Options struct {
	// TransactionID, if non-zero, overrides the runner's default resolution.
	TransactionID byte
	// Transaction3F indicates the TRANSACTION_CODE_3F quirk is set.
	Transaction3F bool
	// ProtocolType is placed in the header; spec.md defaults it to 0.
	ProtocolType byte
	// Wait overrides DefaultWait.
	Wait time.Duration
	// OnTimeout, if set, is invoked when the device reports StatusTimeout;
	// wireless devices use this to mark themselves offline.
	OnTimeout func()
}

func (o Options) resolveTransactionID() byte {
	if o.TransactionID != 0 {
		return o.TransactionID
	}
	if o.Transaction3F {
		return 0x3F
	}
	return 0xFF
}

func (o Options) wait() time.Duration {
	if o.Wait > 0 {
		return o.Wait
	}
	return DefaultWait
}

// Runner sends typed commands to one device over its transport.Session.
type Runner struct {
	session *transport.Session
	logger  *slog.Logger
}

// New returns a Runner bound to session.
func New(session *transport.Session, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{session: session, logger: logger}
}

// Run sends command with the given already-encoded payload and returns the
// response payload on success.
func (r *Runner) Run(ctx context.Context, cmd protocol.Command, payload []byte, opts Options) ([]byte, error) {
	transactionID := opts.resolveTransactionID()
	req := protocol.Request{
		Command:       cmd,
		TransactionID: transactionID,
		ProtocolType:  opts.ProtocolType,
		Payload:       payload,
	}

	var lastErr error
	for attempt := 0; attempt <= maxBusyRetries; attempt++ {
		buf, err := req.Pack()
		if err != nil {
			return nil, err
		}
		if err := r.session.WriteFeature(ctx, buf); err != nil {
			return nil, err
		}

		select {
		case <-time.After(opts.wait()):
		case <-ctx.Done():
			return nil, ctx.Err()
		}

		respBuf, err := r.session.ReadFeature(ctx, protocol.InReportID, protocol.Size)
		if err != nil {
			return nil, err
		}

		resp, err := protocol.Unpack(respBuf, req)
		if err != nil {
			return nil, err
		}

		switch resp.Status {
		case protocol.StatusOK:
			return resp.Payload, nil
		case protocol.StatusBusy:
			lastErr = &BusyError{Retries: attempt}
			r.logger.Debug("report busy, retrying", "command", cmd.Name, "attempt", attempt+1)
			select {
			case <-time.After(DefaultWait):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			continue
		case protocol.StatusTimeout:
			if opts.OnTimeout != nil {
				opts.OnTimeout()
			}
			return nil, &OfflineError{Command: cmd}
		case protocol.StatusFail, protocol.StatusUnsupported:
			deviceErr := &DeviceError{Status: resp.Status, Command: cmd}
			r.logger.Error("report device error", "command", cmd.Name, "status", resp.Status.String())
			return nil, deviceErr
		default:
			return nil, fmt.Errorf("report: unknown status 0x%02x", byte(resp.Status))
		}
	}
	return nil, lastErr
}

// IsBusy reports whether err is (or wraps) a BusyError.
func IsBusy(err error) bool {
	var busyErr *BusyError
	return errors.As(err, &busyErr)
}
