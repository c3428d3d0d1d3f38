// Package mint реализует сервис минта admission-токенов: сбор
// подписанного credential'а, отправку mint-транзакции во внешний
// реестр и перевод связанной заявки в статус minted.
package mint

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/enftlab/enft-backend/internal/chain"
	"github.com/enftlab/enft-backend/internal/lib/minttoken"
	"github.com/enftlab/enft-backend/internal/lib/sl"
	"github.com/enftlab/enft-backend/internal/metrics"
	"github.com/enftlab/enft-backend/internal/models"
)

// Ledger описывает внешний реестр, принимающий mint-транзакции.
type Ledger interface {
	MintNFT(ctx context.Context, req chain.MintRequest) (*models.MintReceipt, error)
}

// UserDirectory описывает выборки пользователя и кошелька для self-минта.
type UserDirectory interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindWallet(ctx context.Context, email string) (*models.Wallet, error)
}

// AdminDirectory описывает выборку администратора для делегированного минта.
type AdminDirectory interface {
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
}

// ApprovalLedger переводит ожидающую заявку в статус minted.
type ApprovalLedger interface {
	MarkApprovalMinted(ctx context.Context, email, requestLocation string) (int, error)
}

// Publisher публикует событие успешного минта внешним потребителям.
type Publisher interface {
	PublishMint(event Event) error
}

// Event — событие успешного минта.
type Event struct {
	TxHash   string    `json:"tx_hash"`
	Target   string    `json:"target"`
	Place    string    `json:"place"`
	Day      int       `json:"day"`
	Mode     string    `json:"mode"`
	MintedAt time.Time `json:"minted_at"`
}

// Request — запрос на минт допуска.
//
// RecipientEmail опционален: если задан, после успешного минта ожидающая
// заявка (RecipientEmail, площадка) атомарно переводится в minted.
// Минт без заявки допустим — перевод тогда не затрагивает ни одной строки.
type Request struct {
	Target         string // Адрес получателя NFT
	Day            int    // Срок допуска в днях
	RecipientEmail string // Email заявителя (опционально)
}

// Service реализует оба режима минта.
//
// Идемпотентности нет ни в одном режиме: повторный вызов с теми же
// аргументами выпускает второй NFT. Гарантия "не более одного минта"
// потребовала бы поддержки ключей идемпотентности на стороне реестра.
type Service struct {
	ledger    Ledger
	users     UserDirectory
	admins    AdminDirectory
	approvals ApprovalLedger
	publisher Publisher
	feePayer  *chain.Keyring
	gasLimit  uint64
	log       *slog.Logger
}

// New создает новый Service. publisher и feePayer могут быть nil:
// без feePayer делегированные минты отклоняются.
func New(ledger Ledger, users UserDirectory, admins AdminDirectory,
	approvals ApprovalLedger, publisher Publisher,
	feePayer *chain.Keyring, gasLimit uint64, log *slog.Logger) *Service {
	return &Service{
		ledger:    ledger,
		users:     users,
		admins:    admins,
		approvals: approvals,
		publisher: publisher,
		feePayer:  feePayer,
		gasLimit:  gasLimit,
		log:       log,
	}
}

// MintForUser — self-service минт: пользователь с правами администратора
// площадки подписывает admission-токен своим signing key и платит газ
// со своего кошелька. Площадка берётся из профиля подписанта,
// лимит газа фиксированный.
func (s *Service) MintForUser(ctx context.Context, signerEmail string, req Request) (*models.MintReceipt, error) {
	const op = "services.mint.MintForUser"

	signer, err := s.users.FindByEmail(ctx, signerEmail)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	wallet, err := s.users.FindWallet(ctx, signerEmail)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	token, err := minttoken.Sign(signer.Location, req.Day, signer.SigningKey)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	receipt, err := s.submit(ctx, chain.MintRequest{
		To:    req.Target,
		Token: token,
		Signer: chain.Keyring{
			Address:    wallet.Address,
			PrivateKey: wallet.PrivateKey,
		},
		GasLimit: s.gasLimit,
	}, metrics.ModeSelf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.finishMint(ctx, receipt, req, signer.Location, metrics.ModeSelf)
	return receipt, nil
}

// MintDelegated — минт с fee delegation: подписант берётся из справочника
// администраторов, газ оплачивает отдельный fee payer.
func (s *Service) MintDelegated(ctx context.Context, adminEmail, place string, req Request) (*models.MintReceipt, error) {
	const op = "services.mint.MintDelegated"

	if s.feePayer == nil {
		return nil, fmt.Errorf("%s: fee payer is not configured", op)
	}
	admin, err := s.admins.FindByEmail(ctx, adminEmail)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	token, err := minttoken.Sign(place, req.Day, admin.SigningKey)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	receipt, err := s.submit(ctx, chain.MintRequest{
		To:    req.Target,
		Token: token,
		Signer: chain.Keyring{
			Address:    admin.Address,
			PrivateKey: admin.PrivateKey,
		},
		GasLimit:      s.gasLimit,
		FeeDelegation: true,
		FeePayer:      s.feePayer,
	}, metrics.ModeDelegated)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.finishMint(ctx, receipt, req, place, metrics.ModeDelegated)
	return receipt, nil
}

// submit отправляет транзакцию в реестр. Ошибки реестра возвращаются
// без категоризации и без повторов.
func (s *Service) submit(ctx context.Context, req chain.MintRequest, mode string) (*models.MintReceipt, error) {
	metrics.MintAttempts.WithLabelValues(mode).Inc()
	receipt, err := s.ledger.MintNFT(ctx, req)
	if err != nil {
		metrics.MintFailures.WithLabelValues(mode).Inc()
		return nil, err
	}
	return receipt, nil
}

// finishMint выполняет пост-обработку успешного минта: переводит
// связанную заявку в minted и публикует событие. Обе операции
// best-effort — квитанция уже получена и будет возвращена вызывающему.
func (s *Service) finishMint(ctx context.Context, receipt *models.MintReceipt, req Request, place, mode string) {
	if req.RecipientEmail != "" {
		moved, err := s.approvals.MarkApprovalMinted(ctx, req.RecipientEmail, place)
		if err != nil {
			s.log.Error("failed to mark approval as minted", sl.Err(err),
				slog.String("email", req.RecipientEmail), slog.String("place", place))
		} else if moved == 0 {
			s.log.Warn("mint without a pending approval",
				slog.String("email", req.RecipientEmail), slog.String("place", place))
		}
	}

	if s.publisher != nil {
		event := Event{
			TxHash:   receipt.TxHash,
			Target:   req.Target,
			Place:    place,
			Day:      req.Day,
			Mode:     mode,
			MintedAt: time.Now().UTC(),
		}
		if err := s.publisher.PublishMint(event); err != nil {
			s.log.Error("failed to publish mint event", sl.Err(err),
				slog.String("tx_hash", receipt.TxHash))
		}
	}

	s.log.Info("minted admission token",
		slog.String("tx_hash", receipt.TxHash),
		slog.String("target", req.Target),
		slog.String("place", place),
		slog.String("mode", mode))
}
