package generate_walkin_qr

import (
	"bytes"
	"context"
	"encoding/base64"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	vendorRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/vendor"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type regStub struct {
	reg   *domain.Registration
	calls int
}

func (s *regStub) GetRegistrationByUser(_ context.Context, userID string, role domain.Role) (*domain.Registration, error) {
	if s.reg == nil || s.reg.UserID != userID || role != domain.RoleOwner {
		return nil, vendorRepo.ErrRegistrationNotFound
	}
	return s.reg, nil
}

func (s *regStub) SetQRTokenIfEmpty(_ context.Context, _ string, token string) (string, error) {
	s.calls++
	if s.reg.QRToken == nil {
		s.reg.QRToken = &token
	}
	return *s.reg.QRToken, nil
}

func decodeDataURL(t *testing.T, dataURL string) []byte {
	t.Helper()
	const prefix = "data:image/png;base64,"
	require.True(t, strings.HasPrefix(dataURL, prefix))
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURL, prefix))
	require.NoError(t, err)
	return raw
}

func TestExecute_IssuesTokenOnce(t *testing.T) {
	repo := &regStub{reg: &domain.Registration{ID: "reg-1", UserID: "owner-1", Role: domain.RoleOwner}}
	uc := NewUseCase(repo, "https://app.example.com/", 128, logger.NewWithWriter(io.Discard, "error"))

	first, err := uc.Execute(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.Len(t, first.Token, 32)
	assert.NotContains(t, first.Token, "-")
	assert.Equal(t, "https://app.example.com/salon?qrToken="+first.Token, first.URL)

	img, err := png.Decode(bytes.NewReader(decodeDataURL(t, first.Image)))
	require.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())

	second, err := uc.Execute(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.Equal(t, first.Token, second.Token)
	assert.Equal(t, 1, repo.calls)
}

func TestExecute_NotAnOwner(t *testing.T) {
	uc := NewUseCase(&regStub{}, "https://app.example.com", 0, logger.NewWithWriter(io.Discard, "error"))

	_, err := uc.Execute(context.Background(), "freelancer-1")
	require.ErrorIs(t, err, ErrSalonNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
