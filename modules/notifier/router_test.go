package notifier_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notifykit/notifier/modules/notifier"
	"github.com/notifykit/notifier/pkg/dispatch"
	"github.com/notifykit/notifier/pkg/envelope"
	"github.com/notifykit/notifier/pkg/messaging"
	"github.com/notifykit/notifier/pkg/outcome"
	"github.com/notifykit/notifier/pkg/pipeline"
	"github.com/notifykit/notifier/pkg/templates"
)

type recordingSender struct {
	sent    []dispatch.SendParams
	panicOn string
}

func (s *recordingSender) Send(ctx context.Context, params dispatch.SendParams) error {
	if s.panicOn != "" && params.Metadata["event_type"] == s.panicOn {
		panic("sender blew up")
	}
	s.sent = append(s.sent, params)
	return nil
}

func newTestRouter(t *testing.T, sender dispatch.Sender) (http.Handler, *messaging.MemoryProvider) {
	t.Helper()

	registry := templates.NewRegistry()
	registry.MustRegister(templates.Template{
		EventType: "order.created",
		Channel:   templates.ChannelEmail,
		Name:      "order-created",
		Subject:   "Order {{orderId}} received",
		Body:      "Thanks {{firstName}}, order {{orderId}} is in.",
		Active:    true,
	})

	mem := messaging.NewMemoryProvider()
	proc := pipeline.NewProcessor(
		envelope.NewNormalizer(),
		registry,
		dispatch.NewDispatcher(sender, true),
		outcome.NewPublisher(mem),
	)
	return notifier.Router(proc, "pubsub", nil), mem
}

func postEvent(t *testing.T, h http.Handler, topic, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/events/"+topic, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeStatus(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestRouter_EventDelivered(t *testing.T) {
	t.Parallel()

	sender := &recordingSender{}
	h, mem := newTestRouter(t, sender)

	body := `{"eventType":"order.created","data":{"email":"buyer@shop.test","firstName":"Kim","orderId":"ORD-42"}}`
	rec := postEvent(t, h, "order.created", body)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "SUCCESS", decodeStatus(t, rec)["status"])

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "buyer@shop.test", sender.sent[0].To)
	assert.Equal(t, "Order ORD-42 received", sender.sent[0].Subject)
	assert.Len(t, mem.PublishedTo(outcome.TopicSent), 1)
}

func TestRouter_TopicFallbackRender(t *testing.T) {
	t.Parallel()

	sender := &recordingSender{}
	h, mem := newTestRouter(t, sender)

	// The payload carries no event type, so the topic path segment
	// supplies it and the unknown template falls back to a generic render.
	rec := postEvent(t, h, "order.shipped", `{"data":{"email":"buyer@shop.test"}}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "SUCCESS", decodeStatus(t, rec)["status"])

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "Order Shipped", sender.sent[0].Subject)
	assert.Len(t, mem.PublishedTo(outcome.TopicSent), 1)
}

func TestRouter_PanicBecomesServerError(t *testing.T) {
	t.Parallel()

	sender := &recordingSender{panicOn: "order.created"}
	h, _ := newTestRouter(t, sender)

	body := `{"eventType":"order.created","data":{"email":"buyer@shop.test"}}`
	rec := postEvent(t, h, "order.created", body)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeStatus(t, rec)
	assert.Equal(t, "ERROR", resp["status"])
	assert.Contains(t, resp["message"], "panic")
}

func TestRouter_SubscriptionList(t *testing.T) {
	t.Parallel()

	h, _ := newTestRouter(t, &recordingSender{})

	req := httptest.NewRequest(http.MethodGet, "/dapr/subscribe", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var subs []notifier.Subscription
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &subs))
	require.Len(t, subs, len(notifier.Topics))
	for i, sub := range subs {
		assert.Equal(t, "pubsub", sub.PubsubName)
		assert.Equal(t, notifier.Topics[i], sub.Topic)
		assert.Equal(t, "/events/"+notifier.Topics[i], sub.Route)
	}
}

func TestRouter_Healthz(t *testing.T) {
	t.Parallel()

	h, _ := newTestRouter(t, &recordingSender{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "SUCCESS", decodeStatus(t, rec)["status"])
}
