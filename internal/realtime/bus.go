package realtime

import (
	"context"
	"errors"
	"time"

	"github.com/gharkeseva/gharseva-api/internal/application/booking"
	"github.com/gharkeseva/gharseva-api/internal/domain"
	"github.com/gharkeseva/gharseva-api/internal/domain/entity"
	"github.com/gharkeseva/gharseva-api/pkg/logger"
)

// AdminChannel is the shared channel admin connections join in addition to
// their own identity channel, so dispatch alerts reach every admin device.
const AdminChannel = "admins"

const (
	disconnectTimeout = 5 * time.Second
	publishTimeout    = 3 * time.Second
)

// Directory is the slice of the identity resolver the bus needs: persisting
// the online flag and enumerating online vendors of a category.
type Directory interface {
	SetOnline(ctx context.Context, vendorID string, online bool) error
	OnlineVendorIDs(ctx context.Context, category string) ([]string, error)
}

// EventPublisher mirrors bus events to an external broker for out-of-process
// consumers. Optional.
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v interface{}) error
}

// Bus tracks vendor presence and relays booking, status and chat events to
// the right identity channels. Presence-flag writes that fail are logged and
// never block the broadcast path.
type Bus struct {
	hub *Hub
	dir Directory
	pub EventPublisher // nil when AMQP is not configured
	log *logger.Logger
}

// NewBus builds the bus. pub may be nil.
func NewBus(hub *Hub, dir Directory, pub EventPublisher, log *logger.Logger) *Bus {
	return &Bus{hub: hub, dir: dir, pub: pub, log: log}
}

// Join subscribes a connection to an identity channel.
func (b *Bus) Join(identity string, sub Subscriber) {
	b.hub.Join(identity, sub)
}

// Leave removes a connection from an identity channel.
func (b *Bus) Leave(identity string, sub Subscriber) {
	b.hub.Leave(identity, sub)
}

// Relay delivers a payload to the target identity's channel, at-most-once.
// A target with no live connections simply misses the event.
func (b *Bus) Relay(kind, target string, payload interface{}) {
	b.hub.Broadcast(target, Event{Kind: kind, Data: payload})
}

// MarkOnline persists online=true and broadcasts the presence change.
func (b *Bus) MarkOnline(ctx context.Context, vendorID string) {
	if err := b.dir.SetOnline(ctx, vendorID, true); err != nil {
		b.log.Warn().Err(err).Str("vendor", vendorID).Msg("online flag write failed")
	}
	b.PresenceChanged(vendorID, true)
}

// MarkOffline persists online=false and broadcasts the presence change. An
// unknown vendor is reported to the caller; a failed write for a known
// vendor is logged and the broadcast still goes out.
func (b *Bus) MarkOffline(ctx context.Context, vendorID string) error {
	if err := b.dir.SetOnline(ctx, vendorID, false); err != nil {
		if errors.Is(err, domain.ErrVendorNotFound) {
			return err
		}
		b.log.Warn().Err(err).Str("vendor", vendorID).Msg("offline flag write failed")
	}
	b.PresenceChanged(vendorID, false)
	return nil
}

// Disconnected handles a dropped connection that carried a vendor identity.
// It runs on its own bounded context so a slow directory scatter never
// blocks the transport's shutdown path, and a vendor that no longer exists
// is skipped silently.
func (b *Bus) Disconnected(vendorID string) {
	if vendorID == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
		defer cancel()
		if err := b.MarkOffline(ctx, vendorID); err != nil {
			b.log.Debug().Str("vendor", vendorID).Msg("disconnect for unknown vendor, skipped")
		}
	}()
}

// PresenceChanged broadcasts a presence event to every subscriber. Used
// directly by the login flow, which already persisted the flag through the
// partition the vendor was found in.
func (b *Bus) PresenceChanged(vendorID string, online bool) {
	payload := map[string]interface{}{"vendorId": vendorID, "status": online}
	b.hub.BroadcastAll(Event{Kind: EventVendorStatusChange, Data: payload})
	b.mirror("vendor.presence", payload)
}

// BookingCreated fans the dispatch alert out to every online vendor of the
// booking's category and to the admin channel.
func (b *Bus) BookingCreated(ctx context.Context, bk *entity.Booking) {
	category := bk.VendorCategory
	if category == "" {
		category = bk.ServiceCategory
	}
	payload := map[string]interface{}{
		"message":        "New Request!",
		"bookingDetails": booking.ToResponse(bk),
	}
	ev := Event{Kind: EventNewBookingAlert, Data: payload}

	ids, err := b.dir.OnlineVendorIDs(ctx, category)
	if err != nil {
		b.log.Warn().Err(err).Str("category", category).Msg("online vendor lookup failed, dispatch alert degraded to admins only")
	}
	for _, id := range ids {
		b.hub.Broadcast(id, ev)
	}
	b.hub.Broadcast(AdminChannel, ev)
	b.mirror("booking.created", payload)
}

// BookingStatusChanged notifies the owning customer's channel.
func (b *Bus) BookingStatusChanged(ctx context.Context, bk *entity.Booking) {
	payload := map[string]interface{}{
		"customBookingId": bk.CustomBookingID,
		"bookingStatus":   bk.Status,
		"booking":         booking.ToResponse(bk),
	}
	b.hub.Broadcast(bk.CustomerUserID, Event{Kind: EventOrderStatusUpdated, Data: payload})
	b.mirror("booking.status_updated", payload)
}

// mirror publishes the event to the external broker when one is configured.
func (b *Bus) mirror(key string, payload interface{}) {
	if b.pub == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := b.pub.PublishJSON(ctx, key, payload); err != nil {
		b.log.Warn().Err(err).Str("key", key).Msg("event mirror publish failed")
	}
}
