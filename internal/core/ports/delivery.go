package ports

// DeliveryChannel names an outbound side channel.
type DeliveryChannel string

const (
	ChannelEmail DeliveryChannel = "email"
	ChannelSMS   DeliveryChannel = "sms"
)

// Delivery is one outbound message (email or SMS) emitted by a lifecycle
// transition. Deliveries are best-effort and independent of engine state.
type Delivery struct {
	Channel DeliveryChannel
	To      string
	Subject string
	Body    string
}

// Deliverer accepts deliveries for asynchronous dispatch. Enqueue must not
// block engine operations.
type Deliverer interface {
	Enqueue(d Delivery)
}
