package email

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestDiagnoseDelivery(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code string
		temp bool
	}{
		{"nil", nil, "unknown", false},
		{"401", &DeliveryError{StatusCode: http.StatusUnauthorized}, "auth", false},
		{"403", &DeliveryError{StatusCode: http.StatusForbidden}, "forbidden", false},
		{"413", &DeliveryError{StatusCode: http.StatusRequestEntityTooLarge}, "payload_too_large", false},
		{"429", &DeliveryError{StatusCode: http.StatusTooManyRequests}, "rate_limited", true},
		{"503", &DeliveryError{StatusCode: http.StatusServiceUnavailable}, "upstream", true},
		{"400", &DeliveryError{StatusCode: http.StatusBadRequest}, "bad_request", false},
		{"wrapped 400", fmt.Errorf("send: %w", &DeliveryError{StatusCode: 400}), "bad_request", false},
		{"fetch 404", &FetchError{StatusCode: 404}, "attachment", false},
		{"fetch 502", &FetchError{StatusCode: 502}, "attachment", true},
		{"canceled", context.Canceled, "canceled", false},
		{"deadline", context.DeadlineExceeded, "timeout", true},
		{"net timeout", timeoutErr{}, "timeout", true},
		{"other", errors.New("x"), "unknown", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := DiagnoseDelivery(tc.err)
			assert.Equal(t, tc.code, d.Code)
			assert.Equal(t, tc.temp, d.Temporary)
		})
	}
}
