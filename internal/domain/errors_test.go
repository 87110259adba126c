package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeoutErrorMessage(t *testing.T) {
	err := &TimeoutError{Elapsed: 2 * time.Second}
	assert.Contains(t, err.Error(), "2s")
}

func TestUpstreamErrorUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := &UpstreamError{Source: "accounts", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "accounts")
}
