package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	return New("access-secret-for-tests", "refresh-secret-for-tests", 15*time.Minute, 7*24*time.Hour)
}

func TestIssueAndVerifyAccess(t *testing.T) {
	svc := newTestService()

	tok, err := svc.IssueAccess(42)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := svc.Verify(tok, KindAccess)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, string(KindAccess), claims.Kind)
}

func TestIssueAndVerifyRefresh(t *testing.T) {
	svc := newTestService()

	tok, err := svc.IssueRefresh(7)
	require.NoError(t, err)

	claims, err := svc.Verify(tok, KindRefresh)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
}

func TestVerifyRejectsWrongKind(t *testing.T) {
	svc := newTestService()

	access, err := svc.IssueAccess(1)
	require.NoError(t, err)
	refresh, err := svc.IssueRefresh(1)
	require.NoError(t, err)

	// An access token must not pass as a refresh token and vice versa,
	// even though both are well-formed JWTs.
	_, err = svc.Verify(access, KindRefresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.Verify(refresh, KindAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpired(t *testing.T) {
	svc := New("access-secret-for-tests", "refresh-secret-for-tests", -time.Minute, -time.Minute)

	tok, err := svc.IssueAccess(5)
	require.NoError(t, err)

	_, err = svc.Verify(tok, KindAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsTampered(t *testing.T) {
	svc := newTestService()

	tok, err := svc.IssueAccess(5)
	require.NoError(t, err)

	tampered := tok[:len(tok)-2] + "xx"
	_, err = svc.Verify(tampered, KindAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	other := New("other-access-secret", "other-refresh-secret", 15*time.Minute, time.Hour)

	tok, err := other.IssueAccess(5)
	require.NoError(t, err)

	_, err = newTestService().Verify(tok, KindAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc := newTestService()

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.Verify(tok, KindAccess)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}
