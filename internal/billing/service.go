package billing

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"intersdk/internal/auth"
	"intersdk/internal/fsutil"
	"intersdk/internal/logger"
	"intersdk/pkg/models"
)

// boletosPath is the boleto collection endpoint, relative to the base URL.
const boletosPath = "/cobranca/v2/boletos"

// Gateway is the transport used for boleto operations.
type Gateway interface {
	PostJSON(ctx context.Context, endpoint string, body any, authorization string) ([]byte, error)
	Get(ctx context.Context, endpoint string, authorization string) ([]byte, error)
}

// TokenSource supplies credentials covering the requested scopes.
type TokenSource interface {
	Token(ctx context.Context, scopes ...models.Scope) (*auth.Token, error)
}

// Service orchestrates the boleto lifecycle: issue, retrieve (data and PDF)
// and cancel. It obtains authorization from the token source per operation
// and passes server responses straight into the boleto's lifecycle setters.
type Service struct {
	gw      Gateway
	tokens  TokenSource
	baseURL string
	log     zerolog.Logger
}

// NewService creates a boleto service bound to the given transport, token
// source and API base URL.
func NewService(gw Gateway, tokens TokenSource, baseURL string) *Service {
	return &Service{
		gw:      gw,
		tokens:  tokens,
		baseURL: baseURL,
		log:     logger.WithComponent("billing"),
	}
}

// Issue validates the boleto, submits it for issuance and captures the
// server-assigned identifiers on success. A validation failure returns
// before any network call is made.
func (s *Service) Issue(ctx context.Context, b *Boleto) error {
	if err := b.Validate(); err != nil {
		return err
	}

	token, err := s.tokens.Token(ctx, models.ScopeBoletoWrite)
	if err != nil {
		return err
	}

	s.log.Info().
		Str("reference_code", b.ReferenceCode()).
		Msg("Issuing boleto")

	body, err := s.gw.PostJSON(ctx, s.baseURL+boletosPath, b.ToPayload(), token.AuthorizationHeader())
	if err != nil {
		return err
	}
	var resp models.IssueResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("decoding issue response: %w", err)
	}
	if err := b.SetIssued(&resp); err != nil {
		return err
	}

	s.log.Info().
		Str("reference_code", b.ReferenceCode()).
		Str("our_number", resp.NossoNumero).
		Msg("Boleto issued")
	return nil
}

// Retrieve fetches a boleto by its bank-assigned identifier and returns it
// with both the issuance and refresh stages populated.
func (s *Service) Retrieve(ctx context.Context, ourNumber string) (*Boleto, error) {
	payload, err := s.fetch(ctx, ourNumber)
	if err != nil {
		return nil, err
	}

	b, err := FromPayload(payload)
	if err != nil {
		return nil, err
	}
	if err := b.SetIssued(&models.IssueResponse{
		NossoNumero:    payload.NossoNumero,
		CodigoBarras:   payload.CodigoBarras,
		LinhaDigitavel: payload.LinhaDigitavel,
	}); err != nil {
		return nil, err
	}
	if err := b.SetRefreshed(payload); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("our_number", ourNumber).
		Str("situation", string(payload.Situacao)).
		Msg("Boleto retrieved")
	return b, nil
}

// RetrievePDF fetches the printable boleto and writes it to path. The path
// must not exist yet and must carry a .pdf extension.
func (s *Service) RetrievePDF(ctx context.Context, ourNumber, path string) error {
	if err := fsutil.CheckPath(path, false, ".pdf"); err != nil {
		return err
	}

	token, err := s.tokens.Token(ctx, models.ScopeBoletoRead)
	if err != nil {
		return err
	}

	s.log.Info().
		Str("our_number", ourNumber).
		Msg("Retrieving boleto PDF")

	body, err := s.gw.Get(ctx, s.baseURL+boletosPath+"/"+ourNumber+"/pdf", token.AuthorizationHeader())
	if err != nil {
		return err
	}
	var resp models.PDFResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("decoding PDF response: %w", err)
	}
	raw, err := base64.StdEncoding.DecodeString(resp.PDF)
	if err != nil {
		return fmt.Errorf("decoding PDF payload: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	s.log.Info().
		Str("our_number", ourNumber).
		Str("path", path).
		Msg("Boleto PDF saved")
	return nil
}

// Cancel cancels an issued boleto. The reason is checked against the
// enumerated set before any network call.
func (s *Service) Cancel(ctx context.Context, ourNumber string, reason models.CancellationReason) error {
	if !reason.Valid() {
		return fmt.Errorf("%w: %q (accepted: %v)", ErrInvalidCancellationReason, reason, models.CancellationReasons)
	}

	token, err := s.tokens.Token(ctx, models.ScopeBoletoWrite)
	if err != nil {
		return err
	}

	s.log.Info().
		Str("our_number", ourNumber).
		Str("reason", string(reason)).
		Msg("Cancelling boleto")

	body := struct {
		MotivoCancelamento models.CancellationReason `json:"motivoCancelamento"`
	}{reason}
	if _, err := s.gw.PostJSON(ctx, s.baseURL+boletosPath+"/"+ourNumber+"/cancelar", body, token.AuthorizationHeader()); err != nil {
		return err
	}

	s.log.Info().
		Str("our_number", ourNumber).
		Msg("Boleto cancelled")
	return nil
}

func (s *Service) fetch(ctx context.Context, ourNumber string) (*models.BoletoPayload, error) {
	token, err := s.tokens.Token(ctx, models.ScopeBoletoRead)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("our_number", ourNumber).
		Msg("Retrieving boleto data")

	body, err := s.gw.Get(ctx, s.baseURL+boletosPath+"/"+ourNumber, token.AuthorizationHeader())
	if err != nil {
		return nil, err
	}
	var payload models.BoletoPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decoding boleto response: %w", err)
	}
	return &payload, nil
}
