package notifier

// Topics is the list of domain event topics the dispatcher consumes.
// It feeds both inbound surfaces - the sidecar subscription list and the
// broker queue bindings - so the two stay coherent from one definition.
var Topics = []string{
	"auth.user.registered",
	"order.created",
	"order.shipped",
	"order.cancelled",
	"payment.succeeded",
	"payment.failed",
}

// Subscription describes one sidecar pub/sub subscription: which topic to
// deliver on which HTTP route.
type Subscription struct {
	PubsubName string `json:"pubsubname"`
	Topic      string `json:"topic"`
	Route      string `json:"route"`
}

// Subscriptions returns the static subscription list served to the sidecar.
func Subscriptions(pubsubName string) []Subscription {
	subs := make([]Subscription, 0, len(Topics))
	for _, topic := range Topics {
		subs = append(subs, Subscription{
			PubsubName: pubsubName,
			Topic:      topic,
			Route:      "/events/" + topic,
		})
	}
	return subs
}
