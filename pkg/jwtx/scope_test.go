package jwtx_test

import (
	"testing"
	"time"

	"github.com/projetointerclasse/interclasse/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newSigner(now time.Time) *jwtx.ScopeSigner {
	return &jwtx.ScopeSigner{
		Secret: []byte("0123456789abcdef0123456789abcdef"),
		Issuer: "interclasse",
		Now:    func() time.Time { return now },
	}
}

func TestScopeSigner_RoundTrip(t *testing.T) {
	s := newSigner(time.Now())

	tok, err := s.Sign(jwtx.KindSession, "c0ffee", 0)
	require.NoError(t, err)

	id, err := s.Verify(tok, jwtx.KindSession)
	require.NoError(t, err)
	require.Equal(t, "c0ffee", id)
}

func TestScopeSigner_KindMismatch(t *testing.T) {
	s := newSigner(time.Now())

	tok, err := s.Sign(jwtx.KindSession, "c0ffee", 0)
	require.NoError(t, err)

	_, err = s.Verify(tok, jwtx.KindDevice)
	require.ErrorIs(t, err, jwtx.ErrWrongKind)
}

func TestScopeSigner_Expired(t *testing.T) {
	issued := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tok, err := newSigner(issued).Sign(jwtx.KindDevice, "abc", time.Hour)
	require.NoError(t, err)

	_, err = newSigner(issued.Add(30*time.Minute)).Verify(tok, jwtx.KindDevice)
	require.NoError(t, err)

	_, err = newSigner(issued.Add(2*time.Hour)).Verify(tok, jwtx.KindDevice)
	require.ErrorIs(t, err, jwtx.ErrInvalidToken)
}

func TestScopeSigner_Tampered(t *testing.T) {
	s := newSigner(time.Now())
	tok, err := s.Sign(jwtx.KindSession, "abc", 0)
	require.NoError(t, err)

	other := &jwtx.ScopeSigner{Secret: []byte("another-secret-another-secret!!!"), Issuer: "interclasse"}
	_, err = other.Verify(tok, jwtx.KindSession)
	require.ErrorIs(t, err, jwtx.ErrInvalidToken)

	_, err = s.Verify(tok+"x", jwtx.KindSession)
	require.ErrorIs(t, err, jwtx.ErrInvalidToken)

	_, err = s.Verify("", jwtx.KindSession)
	require.ErrorIs(t, err, jwtx.ErrInvalidToken)
}

func TestScopeSigner_EmptySecret(t *testing.T) {
	_, err := (&jwtx.ScopeSigner{}).Sign(jwtx.KindSession, "abc", 0)
	require.Error(t, err)
}
