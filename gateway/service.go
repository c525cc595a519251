package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alovak/nts-userdata/gateway/models"
	"github.com/alovak/nts-userdata/internal/metrics"
	"github.com/alovak/nts-userdata/nts"
	ntsmodels "github.com/alovak/nts-userdata/nts/models"
)

// Service encodes user data for the API and keeps the references voids and
// reversals are built from.
type Service struct {
	repo    *Repository
	encoder *nts.Encoder
	metrics *metrics.Registry
	config  *Config
	now     func() time.Time
}

func NewService(repo *Repository, encoder *nts.Encoder, reg *metrics.Registry, config *Config) *Service {
	if config == nil {
		config = DefaultConfig()
	}
	if encoder == nil {
		encoder = nts.NewEncoder(nil, nil)
	}
	if reg == nil {
		reg = metrics.NewRegistry()
	}
	return &Service{
		repo:    repo,
		encoder: encoder,
		metrics: reg,
		config:  config,
		now:     time.Now,
	}
}

func (s *Service) CreateReference(ctx context.Context, create models.CreateReference) (*models.Reference, error) {
	if create.OriginalMessageCode == "" {
		return nil, fmt.Errorf("original message code: %w", nts.ErrMissingRequiredData)
	}
	if create.UserDataTags == nil {
		create.UserDataTags = map[string]string{}
	}

	// retry on id collision
	for attempt := 0; attempt < 2; attempt++ {
		ref := &models.Reference{
			ID:                  uuid.New().String(),
			OriginalMessageCode: create.OriginalMessageCode,
			UserDataTags:        create.UserDataTags,
			CreatedAt:           s.now().UTC(),
		}
		err := s.repo.CreateReference(ctx, ref)
		if err == nil {
			s.metrics.ReferencesStored.Inc()
			return ref, nil
		}
		if !errors.Is(err, ErrConflict) {
			return nil, fmt.Errorf("creating reference: %w", err)
		}
	}
	return nil, fmt.Errorf("could not create unique reference after retries")
}

func (s *Service) GetReference(ctx context.Context, id string) (*models.Reference, error) {
	ref, err := s.repo.GetReference(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting reference %s: %w", id, err)
	}
	return ref, nil
}

func (s *Service) BankcardUserData(ctx context.Context, req models.UserDataRequest) (models.UserDataResponse, error) {
	return s.encode(ctx, "bankcard", req, s.encoder.BankcardUserData)
}

func (s *Service) NonBankcardUserData(ctx context.Context, req models.UserDataRequest) (models.UserDataResponse, error) {
	return s.encode(ctx, "nonbankcard", req, s.encoder.NonBankcardUserData)
}

func (s *Service) ProductData(ctx context.Context, req models.UserDataRequest) (models.UserDataResponse, error) {
	return s.encode(ctx, "product", req, func(r ntsmodels.Request, _ time.Time) (string, error) {
		return s.encoder.ProductData(r)
	})
}

func (s *Service) BalanceUserData(ctx context.Context, rb ntsmodels.RequestToBalance) (models.UserDataResponse, error) {
	start := time.Now()
	out, err := s.encoder.RequestToBalanceUserData(rb)
	s.observe("balance", "", start, err)
	if err != nil {
		return models.UserDataResponse{}, err
	}
	return models.UserDataResponse{UserData: out, Length: len(out)}, nil
}

type encodeFunc func(req ntsmodels.Request, at time.Time) (string, error)

func (s *Service) encode(ctx context.Context, kind string, req models.UserDataRequest, fn encodeFunc) (models.UserDataResponse, error) {
	r, err := s.prepare(ctx, req)
	if err != nil {
		return models.UserDataResponse{}, err
	}

	at := s.now()
	if req.At != nil {
		at = *req.At
	}

	start := time.Now()
	out, err := fn(r, at)
	s.observe(kind, string(r.Transaction.CardType), start, err)
	if err != nil {
		return models.UserDataResponse{}, err
	}
	return models.UserDataResponse{UserData: out, Length: len(out)}, nil
}

// prepare resolves the stored reference and fills the acceptor fields the
// request leaves empty from the configuration.
func (s *Service) prepare(ctx context.Context, req models.UserDataRequest) (ntsmodels.Request, error) {
	r := req.Request

	if req.ReferenceID != "" {
		ref, err := s.repo.GetReference(ctx, req.ReferenceID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				s.metrics.ReferencesMissing.Inc()
			}
			return r, fmt.Errorf("reference %s: %w", req.ReferenceID, err)
		}
		r.Reference = ref.TransactionReference()
	}

	def := s.config.Acceptor
	if r.Acceptor.TerminalCapability == "" {
		r.Acceptor.TerminalCapability = def.TerminalCapability
	}
	if r.Acceptor.OperatingEnvironment == "" {
		r.Acceptor.OperatingEnvironment = def.OperatingEnvironment
	}
	if r.Acceptor.PostalCode == "" {
		r.Acceptor.PostalCode = def.PostalCode
	}
	if r.Acceptor.AvailableProductCapability == "" {
		r.Acceptor.AvailableProductCapability = def.AvailableProductCapability
	}
	return r, nil
}

func (s *Service) observe(kind, cardType string, start time.Time, err error) {
	s.metrics.EncodeLatencySec.Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.Encoded.WithLabelValues(kind, cardType, metrics.ResultError).Inc()
		s.metrics.Failures.WithLabelValues(errorClass(err)).Inc()
		return
	}
	s.metrics.Encoded.WithLabelValues(kind, cardType, metrics.ResultOK).Inc()
}

func errorClass(err error) string {
	switch {
	case errors.Is(err, nts.ErrMissingRequiredData):
		return "missing_required_data"
	case errors.Is(err, nts.ErrFieldOverflow):
		return "field_overflow"
	case errors.Is(err, nts.ErrUnsupportedCombination):
		return "unsupported_combination"
	case errors.Is(err, nts.ErrInvalidValue):
		return "invalid_value"
	default:
		return "other"
	}
}
