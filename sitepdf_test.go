package sitepdf_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/sitepdf"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := sitepdf.Errorf(sitepdf.EINVALID, "start URL %q is not valid", "ftp://x")

	assert.Equal(t, sitepdf.EINVALID, sitepdf.ErrorCode(err))
	assert.Equal(t, "start URL \"ftp://x\" is not valid", sitepdf.ErrorMessage(err))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("crawl: %w", sitepdf.Errorf(sitepdf.EEMPTY, "no pages"))

	assert.Equal(t, sitepdf.EEMPTY, sitepdf.ErrorCode(err))
	assert.Equal(t, "no pages", sitepdf.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("connection reset")

	assert.Equal(t, sitepdf.EINTERNAL, sitepdf.ErrorCode(err))
	assert.Equal(t, "connection reset", sitepdf.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, sitepdf.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, sitepdf.ErrorMessage(nil))
}
