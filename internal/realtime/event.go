package realtime

// Outbound event kinds. Names are part of the socket wire protocol the
// frontend listens on.
const (
	EventNewBookingAlert    = "new_booking_alert"
	EventOrderStatusUpdated = "order_status_updated"
	EventVendorStatusChange = "vendor_status_change"
	EventReceiveMessage     = "receive_message"
)

// Inbound frame kinds.
const (
	FrameJoinRoom          = "join_room"
	FrameJoinVendor        = "join_vendor"
	FrameSendMessage       = "send_message"
	FrameStatusChangeAlert = "status_change_alert"
)

// Event is one frame delivered to a channel subscriber.
type Event struct {
	Kind string      `json:"event"`
	Data interface{} `json:"data"`
}
