package dispatch_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/notifykit/notifier/pkg/dispatch"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, params dispatch.SendParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

func TestDispatcher_Dispatch(t *testing.T) {
	t.Parallel()

	params := dispatch.SendParams{
		To:      "a@b.com",
		Subject: "Hello",
		Body:    "World",
	}

	t.Run("successful delivery", func(t *testing.T) {
		t.Parallel()

		sender := new(mockSender)
		sender.On("Send", mock.Anything, params).Return(nil).Once()

		d := dispatch.NewDispatcher(sender, true)
		assert.NoError(t, d.Dispatch(context.Background(), params))
		sender.AssertExpectations(t)
	})

	t.Run("sender failure surfaces as error", func(t *testing.T) {
		t.Parallel()

		sender := new(mockSender)
		sender.On("Send", mock.Anything, params).Return(errors.New("smtp down")).Once()

		d := dispatch.NewDispatcher(sender, true)
		assert.Error(t, d.Dispatch(context.Background(), params))
	})

	t.Run("missing recipient skips sender entirely", func(t *testing.T) {
		t.Parallel()

		sender := new(mockSender)

		d := dispatch.NewDispatcher(sender, true)
		err := d.Dispatch(context.Background(), dispatch.SendParams{Subject: "x", Body: "y"})
		assert.ErrorIs(t, err, dispatch.ErrNoRecipient)
		sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("disabled delivery skips sender entirely", func(t *testing.T) {
		t.Parallel()

		sender := new(mockSender)

		d := dispatch.NewDispatcher(sender, false)
		err := d.Dispatch(context.Background(), params)
		assert.ErrorIs(t, err, dispatch.ErrDeliveryDisabled)
		sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("nil sender behaves as disabled", func(t *testing.T) {
		t.Parallel()

		d := dispatch.NewDispatcher(nil, true)
		err := d.Dispatch(context.Background(), params)
		assert.ErrorIs(t, err, dispatch.ErrDeliveryDisabled)
	})
}

func TestSendParams_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		params  dispatch.SendParams
		wantErr bool
	}{
		{
			name:    "valid",
			params:  dispatch.SendParams{To: "a@b.com", Subject: "s", Body: "b"},
			wantErr: false,
		},
		{
			name:    "body only",
			params:  dispatch.SendParams{To: "a@b.com", Body: "b"},
			wantErr: false,
		},
		{
			name:    "missing recipient",
			params:  dispatch.SendParams{Subject: "s", Body: "b"},
			wantErr: true,
		},
		{
			name:    "invalid email",
			params:  dispatch.SendParams{To: "not-an-email", Body: "b"},
			wantErr: true,
		},
		{
			name:    "empty content",
			params:  dispatch.SendParams{To: "a@b.com"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.params.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, dispatch.ErrInvalidParams)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewSender_DriverSelection(t *testing.T) {
	t.Parallel()

	t.Run("disabled by default", func(t *testing.T) {
		t.Parallel()

		s, err := dispatch.NewSender(dispatch.Config{})
		assert.NoError(t, err)
		assert.IsType(t, dispatch.DisabledSender{}, s)
	})

	t.Run("dev driver", func(t *testing.T) {
		t.Parallel()

		s, err := dispatch.NewSender(dispatch.Config{Driver: dispatch.DriverDev, DevOutputDir: t.TempDir()})
		assert.NoError(t, err)
		assert.IsType(t, &dispatch.DevSender{}, s)
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Parallel()

		_, err := dispatch.NewSender(dispatch.Config{Driver: "pigeon"})
		assert.ErrorIs(t, err, dispatch.ErrUnknownDriver)
	})

	t.Run("postmark requires tokens", func(t *testing.T) {
		t.Parallel()

		_, err := dispatch.NewSender(dispatch.Config{Driver: dispatch.DriverPostmark})
		assert.ErrorIs(t, err, dispatch.ErrInvalidConfig)
	})

	t.Run("smtp requires host", func(t *testing.T) {
		t.Parallel()

		_, err := dispatch.NewSender(dispatch.Config{Driver: dispatch.DriverSMTP})
		assert.ErrorIs(t, err, dispatch.ErrInvalidConfig)
	})
}
