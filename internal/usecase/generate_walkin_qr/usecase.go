package generate_walkin_qr

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	vendorRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/vendor"
)

const defaultImageSize = 256

var (
	// ErrSalonNotFound у пользователя нет профиля салона
	ErrSalonNotFound = fmt.Errorf("%w: salon registration not found", domain.ErrNotFound)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("generate_walkin_qr: internal error")
)

// Response QR-код живой очереди салона
type Response struct {
	Token string // постоянный токен салона
	URL   string // ссылка, зашитая в QR-код
	Image string // PNG в виде data URL
}

// UseCase выдает владельцу салона QR-код для записи в живую очередь
// Токен создается один раз и дальше не меняется, иначе распечатанные коды перестанут работать
type UseCase struct {
	vendorRepo VendorRepository
	clientURL  string
	size       int
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(vendorRepo VendorRepository, clientURL string, size int, logger Logger) *UseCase {
	if size <= 0 {
		size = defaultImageSize
	}
	return &UseCase{
		vendorRepo: vendorRepo,
		clientURL:  strings.TrimRight(clientURL, "/"),
		size:       size,
		logger:     logger,
	}
}

// Execute возвращает QR-код салона владельца ownerID
func (uc *UseCase) Execute(ctx context.Context, ownerID string) (*Response, error) {
	reg, err := uc.vendorRepo.GetRegistrationByUser(ctx, ownerID, domain.RoleOwner)
	if err != nil {
		if errors.Is(err, vendorRepo.ErrRegistrationNotFound) {
			uc.logger.Warn("GenerateWalkInQR: owner=%s has no salon", ownerID)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("GenerateWalkInQR: failed to get registration for owner=%s: %v", ownerID, err)
		return nil, fmt.Errorf("%w: failed to get registration: %v", ErrInternal, err)
	}

	token := ""
	if reg.QRToken != nil {
		token = *reg.QRToken
	}
	if token == "" {
		token, err = uc.vendorRepo.SetQRTokenIfEmpty(ctx, reg.ID, newToken())
		if err != nil {
			uc.logger.Error("GenerateWalkInQR: failed to store token for salon=%s: %v", reg.ID, err)
			return nil, fmt.Errorf("%w: failed to store token: %v", ErrInternal, err)
		}
		uc.logger.Info("GenerateWalkInQR: token issued for salon=%s", reg.ID)
	}

	link := uc.walkInURL(token)
	png, err := qrcode.Encode(link, qrcode.Medium, uc.size)
	if err != nil {
		uc.logger.Error("GenerateWalkInQR: failed to encode QR for salon=%s: %v", reg.ID, err)
		return nil, fmt.Errorf("%w: encode qr: %v", ErrInternal, err)
	}

	return &Response{
		Token: token,
		URL:   link,
		Image: "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
	}, nil
}

func (uc *UseCase) walkInURL(token string) string {
	return uc.clientURL + "/salon?qrToken=" + url.QueryEscape(token)
}

// newToken 32 шестнадцатеричных символа
func newToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
